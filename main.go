package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SirSobhan0/lsdsynth/internal/audio"
	"github.com/SirSobhan0/lsdsynth/internal/keys"
	"github.com/SirSobhan0/lsdsynth/internal/patch"
	"github.com/SirSobhan0/lsdsynth/internal/synth"
)

// --- 1. CONFIGURATION ---

type config struct {
	rate     int
	buffer   time.Duration
	backend  string
	patches  string
	patch    string
	hold     time.Duration
	gain     float64
	logFile  string
	render   string
	duration time.Duration
}

func parseFlags() config {
	var c config
	flag.IntVar(&c.rate, "rate", 44100, "sample rate in Hz")
	flag.DurationVar(&c.buffer, "buffer", 50*time.Millisecond, "audio buffer length")
	flag.StringVar(&c.backend, "backend", "beep", "audio backend: beep or oto")
	flag.StringVar(&c.patches, "patches", ".", "directory for .inst patch files")
	flag.StringVar(&c.patch, "patch", "", "patch to load at start (name without .inst)")
	flag.DurationVar(&c.hold, "hold", keys.DefaultHold, "how long a key stays down after its last repeat")
	flag.Float64Var(&c.gain, "gain", synth.DefaultMixGain, "per-voice mix gain")
	flag.StringVar(&c.logFile, "log", "", "write log messages to this file")
	flag.StringVar(&c.render, "render", "", "render a demo phrase to this WAV file instead of playing live")
	flag.DurationVar(&c.duration, "duration", 4*time.Second, "length of the -render output")
	flag.Parse()
	return c
}

// --- 2. AUDIO OUTPUT ---

func openOutput(c config, r audio.Renderer, clock *audio.Clock, tap *audio.Tap) (audio.Output, error) {
	switch c.backend {
	case "beep":
		return audio.NewSpeaker(audio.NewStreamer(r, clock, tap), c.rate, c.buffer)
	case "oto":
		return audio.NewOtoPlayer(r, clock, tap, c.buffer)
	default:
		return nil, fmt.Errorf("unknown backend %q", c.backend)
	}
}

// demoScript plays an A minor arpeggio and holds the last note.
func demoScript() []synth.Event {
	var script []synth.Event
	notes := []synth.Key{0, 3, 7, 12}
	for i, k := range notes {
		on := 0.25 * float64(i)
		script = append(script, synth.Event{
			Key:       k,
			Kind:      synth.Press,
			Frequency: keys.Frequency(k, keys.BaseFrequency),
			Time:      on,
		})
		script = append(script, synth.Event{Key: k, Kind: synth.Release, Time: on + 2})
	}
	return script
}

func renderDemo(c config, engine *synth.Engine) error {
	f, err := os.Create(c.render)
	if err != nil {
		return err
	}
	if err := audio.WriteWAV(f, engine, c.rate, c.duration, demoScript()); err != nil {
		f.Close()
		return err
	}
	log.Printf("main: rendered %v to %s", c.duration, c.render)
	return f.Close()
}

// --- 3. MAIN ---

func run(c config) error {
	if c.logFile != "" {
		f, err := tea.LogToFile(c.logFile, "lsdsynth")
		if err != nil {
			return err
		}
		defer f.Close()
	} else if c.render == "" {
		// The terminal belongs to the UI.
		log.SetOutput(io.Discard)
	}

	store := patch.Store{Dir: c.patches}
	presets := patch.Presets()
	inst, name := presets[0].Instrument, presets[0].Name
	if c.patch != "" {
		in, err := store.Load(c.patch)
		if err != nil {
			return err
		}
		inst, name = in, c.patch
	}
	engine := synth.NewEngine(synth.WithInstrument(inst), synth.WithMixGain(c.gain))

	if c.render != "" {
		return renderDemo(c, engine)
	}

	clock := audio.NewClock(c.rate)
	tap := &audio.Tap{}
	out, err := openOutput(c, engine, clock, tap)
	if err != nil {
		return err
	}
	defer out.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan synth.Event, 64)
	go func() {
		if err := engine.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("main: event loop: %v", err)
		}
	}()

	a := &app{
		engine:  engine,
		events:  events,
		clock:   clock,
		tap:     tap,
		out:     out,
		tracker: keys.NewTracker(c.hold),
		store:   store,
		presets: presets,
	}

	// Run Bubble Tea with the Alt Screen (Full-Screen) flag
	p := tea.NewProgram(initialModel(a, name), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
