package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ncpeek/internal/render"
)

const (
	progressWidth   = 30
	defaultInterval = time.Second / 4
)

// FrameFunc renders time index t.
type FrameFunc func(ctx context.Context, t int) (render.Frame, error)

type TickMsg time.Time

// Model shows one frame at a time. Frames are rendered on demand, one per
// key press or tick.
type Model struct {
	ctx      context.Context
	render   FrameFunc
	frames   int
	t        int
	frame    render.Frame
	err      error
	playing  bool
	interval time.Duration
}

func NewModel(ctx context.Context, frames int, fn FrameFunc) Model {
	m := Model{ctx: ctx, render: fn, frames: frames, interval: defaultInterval}
	m.load(0)
	return m
}

// Time is the current time index.
func (m Model) Time() int { return m.t }

func (m *Model) load(t int) {
	if m.frames == 0 {
		return
	}
	t = max(0, min(t, m.frames-1))
	m.t = t
	m.frame, m.err = m.render(m.ctx, t)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.load(m.t - 1)
		case "right", "l":
			m.load(m.t + 1)
		case "home", "g":
			m.load(0)
		case "end", "G":
			m.load(m.frames - 1)
		case " ":
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}
		}
	case TickMsg:
		if !m.playing {
			return m, nil
		}
		if m.frames > 0 {
			m.load((m.t + 1) % m.frames)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	if m.err != nil {
		s.WriteString(ErrorText.Render(m.err.Error()) + "\n")
	} else {
		s.WriteString(m.frame.String())
	}

	status := StatusPaused.Render("PAUSED")
	if m.playing {
		status = StatusPlaying.Render("PLAYING")
	}
	pos := 0.0
	if m.frames > 1 {
		pos = float64(m.t) / float64(m.frames-1)
	}
	s.WriteString(fmt.Sprintf("\n%s %s %d/%d\n", status, ProgressBar(pos, progressWidth), m.t, max(m.frames-1, 0)))
	s.WriteString(KeyHint.Render("←/→ step  g/G ends  space play  q quit"))
	return s.String()
}

// Run blocks until the viewer quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
