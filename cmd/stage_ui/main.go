package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	midistage "github.com/cbegin/midistage-go"
)

const (
	windowW = 1100
	windowH = 640

	laneW      = 64  // horizontal span of one stack slot
	bodyW      = 48  // instrument body width
	bodyH      = 120 // instrument body height
	rowH       = 170 // vertical span of one family row
	marginX    = 40
	marginY    = 60
	stickLen   = 46.0
	recoilGain = 8.0 // pixels per recoil unit
	wobbleGain = 6.0 // pixels per wobble unit

	seekStep = 5.0
)

var (
	bgColor      = color.RGBA{18, 18, 24, 255}
	bodyColor    = color.RGBA{70, 90, 160, 255}
	soundColor   = color.RGBA{150, 190, 255, 255}
	clonePlaying = color.RGBA{255, 196, 64, 255}
	cloneIdle    = color.RGBA{70, 70, 80, 255}
	stickColor   = color.RGBA{230, 230, 230, 255}
	barColor     = color.RGBA{60, 200, 120, 255}
	barBgColor   = color.RGBA{40, 40, 48, 255}
)

type game struct {
	stage  *midistage.Stage
	path   string
	rows   map[midistage.Family]int
	time   float64
	paused bool
}

func newGame(stage *midistage.Stage, path string) *game {
	rows := make(map[midistage.Family]int)
	for i, f := range stage.Families() {
		rows[f] = i
	}
	stage.Tick(0, 0)
	return &game{stage: stage, path: path, rows: rows}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.seek(g.time - seekStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.seek(g.time + seekStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.seek(0)
	}

	if !g.paused && g.time < g.stage.Duration() {
		delta := 1.0 / float64(ebiten.TPS())
		g.time += delta
		g.stage.Tick(g.time, delta)
	}
	return nil
}

func (g *game) seek(to float64) {
	if to < 0 {
		to = 0
	}
	if max := g.stage.Duration(); to > max {
		to = max
	}
	g.time = to
	g.stage.Tick(g.time, 0)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	for _, in := range g.stage.Instruments() {
		if !in.Visible() {
			continue
		}
		g.drawInstrument(screen, in)
	}

	g.drawTransportBar(screen)
	status := fmt.Sprintf("%s  %.2fs / %.2fs", g.path, g.time, g.stage.Duration())
	if g.paused {
		status += "  [paused]"
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)
	ebitenutil.DebugPrintAt(screen, "space pause · arrows seek · r restart", 8, 24)
}

// drawInstrument renders one instance: a body offset by its continuous stack
// index, shifted down by recoil, wobbling when it is a cymbal, plus a stick
// line at the striker angle and one cell per polyphony clone.
func (g *game) drawInstrument(screen *ebiten.Image, in *midistage.Instrument) {
	row := g.rows[in.Family()]
	x := float64(marginX) + in.StackIndex()*laneW
	if in.Family() == midistage.FamilyDrums {
		// Drum pieces stack per piece; spread them by key instead.
		x += float64(int(in.PercussionKey())%12) * (laneW / 2)
	}
	y := float64(marginY + row*rowH)

	y -= in.RecoilOffset() * recoilGain // offset is <= 0, so this pushes down
	x += math.Sin(in.WobblePhase()) * in.WobbleAmplitude() * wobbleGain

	body := bodyColor
	if in.Sounding(g.time) {
		body = soundColor
	}
	ebitenutil.DrawRect(screen, x, y, bodyW, bodyH, body)

	if in.Traits().Striker {
		g.drawStick(screen, in, x+bodyW/2, y)
	}
	if clones := in.Clones(); len(clones) > 0 {
		for i, c := range clones {
			col := cloneIdle
			if c.Playing() {
				col = clonePlaying
			}
			ebitenutil.DrawRect(screen, x+float64(i*10), y+bodyH+6, 8, 8, col)
		}
	}
	if in.Traits().Twelfths {
		for slot := 0; slot < 12; slot++ {
			col := cloneIdle
			if in.TwelfthPlaying(slot) {
				col = clonePlaying
			}
			ebitenutil.DrawRect(screen, x+float64(slot*4), y+bodyH+6, 3, 8, col)
		}
	}

	label := fmt.Sprintf("%s %.2f", in.Name(), in.StackIndex())
	ebitenutil.DebugPrintAt(screen, label, int(x), int(y)-16)
}

// drawStick approximates the rotated stick with a short segment of stacked
// rects from the pivot, which keeps the demo free of triangle plumbing.
func (g *game) drawStick(screen *ebiten.Image, in *midistage.Instrument, px, py float64) {
	rad := in.StickAngle() * math.Pi / 180
	steps := 12
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		x := px + stickLen*t*math.Sin(rad)
		y := py - stickLen*t*math.Cos(rad)
		ebitenutil.DrawRect(screen, x-1.5, y-1.5, 3, 3, stickColor)
	}
}

func (g *game) drawTransportBar(screen *ebiten.Image) {
	barY := float64(windowH - 20)
	ebitenutil.DrawRect(screen, marginX, barY, windowW-2*marginX, 6, barBgColor)
	if dur := g.stage.Duration(); dur > 0 {
		fill := (windowW - 2*marginX) * (g.time / dur)
		ebitenutil.DrawRect(screen, marginX, barY, fill, 6, barColor)
	}
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	return windowW, windowH
}

func main() {
	var (
		midiPath    = flag.String("file", "", "path to a Standard MIDI File")
		configPath  = flag.String("config", "", "optional YAML tuning file")
		neverHidden = flag.Bool("never-hidden", false, "force every instrument visible")
	)
	flag.Parse()

	if strings.TrimSpace(*midiPath) == "" {
		log.Fatal("missing -file")
	}
	score, err := midistage.ReadSMFFile(*midiPath)
	if err != nil {
		log.Fatal(err)
	}
	opts := []midistage.Option{midistage.WithNeverHidden(*neverHidden)}
	if strings.TrimSpace(*configPath) != "" {
		cfg, err := midistage.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		opts = []midistage.Option{midistage.WithConfig(cfg), midistage.WithNeverHidden(*neverHidden || cfg.NeverHidden)}
	}
	stage := midistage.NewStage(score, opts...)

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("midistage")
	if err := ebiten.RunGame(newGame(stage, *midiPath)); err != nil {
		log.Fatal(err)
	}
}
