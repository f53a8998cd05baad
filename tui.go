package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SirSobhan0/lsdsynth/internal/audio"
	"github.com/SirSobhan0/lsdsynth/internal/keys"
	"github.com/SirSobhan0/lsdsynth/internal/patch"
	"github.com/SirSobhan0/lsdsynth/internal/synth"
)

// --- 1. STATE ---

// app is what the UI drives. The model is copied on every update, app is
// shared. Key transitions go to the engine through events.
type app struct {
	engine  *synth.Engine
	events  chan synth.Event
	clock   *audio.Clock
	tap     *audio.Tap
	out     audio.Output
	tracker *keys.Tracker
	store   patch.Store
	presets []patch.Preset
}

type promptKind int

const (
	promptNone promptKind = iota
	promptSave
	promptLoad
)

type TickMsg time.Time

type model struct {
	app *app

	instName string
	presetID int
	volume   float64
	status   string

	prompt  promptKind
	input   string
	patches []string

	width    int
	height   int
	spectrum []float64
	scope    []float64
	levels   [synth.Polyphony]float64
	voices   synth.Pool
	nextFree int
}

const numBars = 42

func initialModel(a *app, name string) model {
	return model{
		app:      a,
		instName: name,
		spectrum: make([]float64, numBars),
		scope:    make([]float64, audio.TapSize),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*30, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd { return tick() }

// --- 2. INPUT ---

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.releaseExpired(time.Time(msg))
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg), nil
		}
		return m.updatePlay(msg)
	}
	return m, nil
}

// releaseExpired turns keys that stopped repeating into release events.
func (m *model) releaseExpired(now time.Time) {
	expired := m.app.tracker.Expire(now)
	if len(expired) == 0 {
		return
	}
	t := m.app.clock.Now()
	for _, k := range expired {
		m.app.events <- synth.Event{Key: k, Kind: synth.Release, Time: t}
	}
}

func (m *model) refresh() {
	// Decay visualizer bars
	for i := range m.spectrum {
		m.spectrum[i] *= 0.82
	}
	n := m.app.tap.Snapshot(m.scope)
	fresh := make([]float64, numBars)
	audio.Spectrum(m.scope[:n], m.app.clock.SampleRate(), fresh)
	for i, v := range fresh {
		m.spectrum[i] = math.Min(1, math.Max(m.spectrum[i], v*2.5))
	}

	t := m.app.clock.Now()
	m.voices = m.app.engine.Channels()
	if i, ok := m.app.engine.FindAvailableChannel(t); ok {
		m.nextFree = i
	} else {
		m.nextFree = -1
	}
	for i := range m.voices {
		m.levels[i] = m.voices[i].Env.Amplitude(t)
	}
}

func (m model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEscape:
		return m, tea.Quit

	case tea.KeySpace:
		m.app.events <- synth.Event{Kind: synth.Silence, Time: m.app.clock.Now()}
		m.app.tracker.Clear()
		m.status = "all voices silenced"
		return m, nil

	case tea.KeyTab:
		m.presetID = (m.presetID + 1) % len(m.app.presets)
		p := m.app.presets[m.presetID]
		m.app.engine.SetInstrument(p.Instrument)
		m.instName = p.Name
		m.status = ""
		return m, nil

	case tea.KeyCtrlS:
		m.prompt, m.input = promptSave, ""
		return m, nil

	case tea.KeyCtrlE:
		m.prompt, m.input = promptLoad, ""
		names, err := m.app.store.List()
		if err != nil {
			log.Printf("ui: %v", err)
		}
		m.patches = names
		return m, nil
	}

	switch s := msg.String(); s {
	case "+", "=":
		m.volume = m.app.out.AdjustVolume(0.5)
		return m, nil
	case "-":
		m.volume = m.app.out.AdjustVolume(-0.5)
		return m, nil
	case "1":
		m.app.engine.UpdateInstrument(func(in *synth.Instrument) { in.Osc1.Waveform = in.Osc1.Waveform.Next() })
		return m, nil
	case "2":
		m.app.engine.UpdateInstrument(func(in *synth.Instrument) { in.Osc2.Waveform = in.Osc2.Waveform.Next() })
		return m, nil
	case "3":
		m.app.engine.UpdateInstrument(func(in *synth.Instrument) {
			in.FMSource = (in.FMSource + 1) % (synth.SourceEnv2 + 1)
		})
		return m, nil
	}

	if k, ok := keys.Lookup(msg.String()); ok {
		if m.app.tracker.Touch(k, time.Now()) {
			m.app.events <- synth.Event{
				Key:       k,
				Kind:      synth.Press,
				Frequency: keys.Frequency(k, keys.BaseFrequency),
				Time:      m.app.clock.Now(),
			}
		}
	}
	return m, nil
}

func (m model) updatePrompt(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyEscape, tea.KeyCtrlC:
		m.prompt = promptNone
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			r := []rune(m.input)
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	case tea.KeyEnter:
		m.status = m.runPrompt()
		m.prompt = promptNone
	}
	return m
}

func (m *model) runPrompt() string {
	name := strings.TrimSpace(m.input)
	switch m.prompt {
	case promptSave:
		err := m.app.store.Save(name, m.app.engine.Instrument())
		if errors.Is(err, patch.ErrExists) {
			return "that patch already exists"
		}
		if err != nil {
			log.Printf("ui: %v", err)
			return "save failed: " + err.Error()
		}
		m.instName = name
		return "instrument saved"

	case promptLoad:
		in, err := m.app.store.Load(name)
		if err != nil {
			log.Printf("ui: %v", err)
			return "load failed: " + err.Error()
		}
		m.app.engine.SetInstrument(in)
		m.instName = name
		return "instrument loaded"
	}
	return ""
}

// --- 3. STYLES ---
var (
	panelStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#444444"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			MarginBottom(1).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00E6C3"))

	instStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00E6C3")).
			Background(lipgloss.Color("#111111")).
			Padding(0, 1).
			MarginBottom(1)

	visStyle = lipgloss.NewStyle().
			MarginBottom(1)

	waveColor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00E6C3"))

	keyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(5).
			Height(2).
			Align(lipgloss.Center)

	blackKeyStyle = keyStyle.
			Background(lipgloss.Color("#1A1A1A"))

	activeKeyStyle = keyStyle.
			BorderForeground(lipgloss.Color("#00E6C3")).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#00E6C3")).
			Bold(true)

	channelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)
)

// --- 4. VIEW ---

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	in := m.app.engine.Instrument()
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("🎹 LSDSYNTH"),
		"   ",
		instStyle.Render(fmt.Sprintf("Patch: %s  │  %s + %s  │  FM %s %.2f  │  Gain %.2f  │  Vol %+.1f",
			m.instName, in.Osc1.Waveform, in.Osc2.Waveform, in.FMSource, in.FMDepth, m.app.engine.MixGain(), m.volume)),
	)

	ui := lipgloss.JoinVertical(lipgloss.Center,
		header,
		visStyle.Render(m.viewSpectrum()),
		m.viewKeyboard(),
		channelStyle.Render(m.viewChannels()),
		m.viewFooter(),
	)
	panel := panelStyle.Render(ui)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

// viewSpectrum draws the bars mirrored around a centre line.
func (m model) viewSpectrum() string {
	var visLines []string
	for r := 3; r >= -3; r-- {
		var line strings.Builder
		absR := math.Abs(float64(r))
		for _, val := range m.spectrum {
			h := val * 3.0
			switch {
			case r == 0 && h > 0.1:
				line.WriteString("█")
			case r == 0:
				line.WriteString("━")
			case h >= absR:
				line.WriteString("█")
			case h >= absR-0.5 && r > 0:
				line.WriteString("▄")
			case h >= absR-0.5:
				line.WriteString("▀")
			default:
				line.WriteString(" ")
			}
			line.WriteString(" ")
		}
		visLines = append(visLines, waveColor.Render(line.String()))
	}
	return strings.Join(visLines, "\n")
}

func (m model) viewKeyboard() string {
	var black, white []string
	for i, n := range keys.Layout {
		content := fmt.Sprintf("%s\n%s", n.Name, strings.ToUpper(n.Key))
		style := keyStyle
		if n.Black {
			style = blackKeyStyle
		}
		if m.app.tracker.IsHeld(synth.Key(i)) {
			style = activeKeyStyle
		}
		if n.Black {
			black = append(black, style.Render(content))
		} else {
			white = append(white, style.Render(content))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, black...),
		lipgloss.JoinHorizontal(lipgloss.Top, white...),
	)
}

func (m model) viewChannels() string {
	var cells []string
	for i, ch := range m.voices {
		note := "·"
		if ch.Assigned {
			note = keys.Name(ch.Key)
		}
		bars := int(math.Round(m.levels[i] * 5))
		mark := " "
		if i == m.nextFree {
			mark = "›"
		}
		cells = append(cells, fmt.Sprintf("%s%d:%-2s %-5s", mark, i+1, note, strings.Repeat("▮", bars)))
	}
	return strings.Join(cells, " ")
}

func (m model) viewFooter() string {
	switch m.prompt {
	case promptSave:
		return helpStyle.Render(promptStyle.Render("Save instrument as: " + m.input + "█"))
	case promptLoad:
		saved := "no saved patches"
		if len(m.patches) > 0 {
			saved = "saved: " + strings.Join(m.patches, ", ")
		}
		return helpStyle.Render(saved + "\n" + promptStyle.Render("Load instrument: "+m.input+"█"))
	}

	var chord []string
	for _, k := range m.app.tracker.Held() {
		chord = append(chord, keys.Name(k))
	}
	help := "TAB: Preset  •  1/2: Osc waves  •  3: FM source  •  +/-: Volume  •  CTRL+S/E: Save/Load  •  SPACE: Silence  •  ESC: Quit"
	if m.status != "" {
		help = m.status + "\n" + help
	}
	if len(chord) > 0 {
		help = "holding " + strings.Join(chord, " ") + "\n" + help
	}
	return helpStyle.Render(help)
}
