package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	midistage "github.com/cbegin/midistage-go"
)

func main() {
	var (
		midiPath    = flag.String("file", "", "path to a Standard MIDI File")
		configPath  = flag.String("config", "", "optional YAML tuning file")
		fps         = flag.Float64("fps", 4, "sample rate of the printed frames")
		from        = flag.Float64("from", 0, "start of the sampled window in seconds")
		until       = flag.Float64("until", -1, "end of the sampled window (-1 = full performance)")
		neverHidden = flag.Bool("never-hidden", false, "force every instrument visible")
		hidden      = flag.Bool("show-hidden", false, "print invisible instruments too")
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

	printSummary(stage)

	end := stage.Duration()
	if *until >= 0 && *until < end {
		end = *until
	}
	if *fps <= 0 {
		log.Fatal("-fps must be positive")
	}
	delta := 1.0 / *fps
	for time := *from; time <= end; time += delta {
		stage.Tick(time, delta)
		printFrame(stage, time, *hidden)
	}
}

func printSummary(stage *midistage.Stage) {
	score := stage.Score()
	fmt.Printf("resolution %d ticks/quarter, %d voices, %.2fs\n", score.Resolution, len(score.Voices), stage.Duration())
	for _, in := range stage.Instruments() {
		var extras []string
		if n := len(in.Clones()); n > 0 {
			extras = append(extras, fmt.Sprintf("%d clones", n))
		}
		tr := in.Traits()
		if tr.Twelfths {
			extras = append(extras, "twelfths")
		}
		if tr.Striker {
			extras = append(extras, "striker")
		}
		if tr.Wobble {
			extras = append(extras, "wobble")
		}
		suffix := ""
		if len(extras) > 0 {
			suffix = " (" + strings.Join(extras, ", ") + ")"
		}
		fmt.Printf("  ch%-2d %-22s %-12s %4d notes%s\n",
			in.Channel()+1, in.Name(), in.Family(), len(in.NotePeriods()), suffix)
	}
	fmt.Println()
}

func printFrame(stage *midistage.Stage, time float64, showHidden bool) {
	fmt.Printf("t=%7.3f\n", time)
	for _, in := range stage.Instruments() {
		if !in.Visible() && !showHidden {
			continue
		}
		mark := "-"
		if in.Visible() {
			mark = "+"
		}
		line := fmt.Sprintf("  %s %-22s stack %5.2f", mark, in.Name(), in.StackIndex())
		tr := in.Traits()
		if tr.Striker {
			line += fmt.Sprintf("  stick %5.1f°", in.StickAngle())
		}
		if in.RecoilOffset() < 0 {
			line += fmt.Sprintf("  recoil %6.3f", in.RecoilOffset())
		}
		if tr.Wobble {
			line += fmt.Sprintf("  wobble %5.3f", in.WobbleAmplitude())
		}
		if playing := playingClones(in); playing != "" {
			line += "  " + playing
		}
		fmt.Println(line)
	}
}

func playingClones(in *midistage.Instrument) string {
	clones := in.Clones()
	if len(clones) == 0 {
		return ""
	}
	active := 0
	for _, c := range clones {
		if c.Playing() {
			active++
		}
	}
	if active == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d clones sounding", active, len(clones))
}
