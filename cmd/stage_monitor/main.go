package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	midistage "github.com/cbegin/midistage-go"
)

const (
	frameRate = 30
	seekStep  = 5.0 // seconds per arrow key press
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")).Padding(0, 1)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	visibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("48"))
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	struckStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type model struct {
	stage    *midistage.Stage
	path     string
	time     float64
	playing  bool
	quitting bool
}

func newModel(stage *midistage.Stage, path string) model {
	stage.Tick(0, 0)
	return model{stage: stage, path: path, playing: true}
}

func (m model) Init() tea.Cmd {
	return nextFrame()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "left":
			m.seek(m.time - seekStep)
		case "right":
			m.seek(m.time + seekStep)
		case "r":
			m.seek(0)
		}
	case frameMsg:
		if m.playing && m.time < m.stage.Duration() {
			delta := 1.0 / frameRate
			m.time += delta
			m.stage.Tick(m.time, delta)
		}
		return m, nextFrame()
	}
	return m, nil
}

// seek jumps the transport; the engine re-derives all state from history,
// so a plain Tick with zero delta lands every machine on the target time.
func (m *model) seek(to float64) {
	if to < 0 {
		to = 0
	}
	if max := m.stage.Duration(); to > max {
		to = max
	}
	m.time = to
	m.stage.Tick(m.time, 0)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	state := "playing"
	if !m.playing {
		state = "paused"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %7.2fs / %.2fs  [%s]", m.path, m.time, m.stage.Duration(), state)))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("   %-22s %-12s %6s %8s %8s %8s", "instrument", "family", "stack", "stick", "recoil", "wobble")))
	b.WriteString("\n")

	for _, in := range m.stage.Instruments() {
		style := hiddenStyle
		mark := "·"
		switch {
		case in.JustStruck():
			style, mark = struckStyle, "●"
		case in.Visible():
			style, mark = visibleStyle, "●"
		}
		line := fmt.Sprintf(" %s %-22s %-12s %6.2f %7.1f° %8.3f %8.3f",
			mark, in.Name(), in.Family(), in.StackIndex(), in.StickAngle(), in.RecoilOffset(), in.WobbleAmplitude())
		b.WriteString(style.Render(line))
		if clones := cloneCells(in); clones != "" {
			b.WriteString(style.Render("  " + clones))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause/resume · ←/→ seek 5s · r restart · q quit"))
	b.WriteString("\n")
	return b.String()
}

func cloneCells(in *midistage.Instrument) string {
	clones := in.Clones()
	if len(clones) == 0 {
		return ""
	}
	cells := make([]rune, len(clones))
	for i, c := range clones {
		cells[i] = '□'
		if c.Playing() {
			cells[i] = '■'
		}
	}
	return string(cells)
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

	if _, err := tea.NewProgram(newModel(stage, *midiPath)).Run(); err != nil {
		log.Fatal(err)
	}
}
