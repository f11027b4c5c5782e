package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springsim/internal/anim"
	"github.com/san-kum/springsim/internal/node"
)

const (
	barWidth        = 50
	graphWidth      = 60
	historyCapacity = 240
)

type TickMsg time.Time

// session is the mutable part of the view, shared across Model copies.
type session struct {
	anim      *anim.Animation
	out       *node.ValueNode
	clock     float64
	last      time.Time
	completed bool
	finished  bool
	history   []float64
	speeds    []float64
}

// Model contains the running animation and the view state.
type Model struct {
	cfg    anim.Config
	from   float64
	fps    int
	title  string
	paused bool
	bar    progress.Model
	s      *session
}

// NewModel builds the animation from cfg, starting at from.
func NewModel(cfg anim.Config, from float64, fps int, title string) Model {
	if fps <= 0 {
		fps = 60
	}
	m := Model{
		cfg:   cfg,
		from:  from,
		fps:   fps,
		title: title,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.bar.Width = barWidth
	m.s = m.newSession()
	return m
}

func (m Model) newSession() *session {
	s := &session{
		out:     node.New(m.from),
		history: make([]float64, 0, historyCapacity),
		speeds:  make([]float64, 0, historyCapacity),
	}
	s.anim = anim.New(m.cfg, s.out)
	s.anim.OnComplete(func(finished bool) {
		s.completed = true
		s.finished = finished
	})
	s.anim.Start()
	return s
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.s.anim.Stop()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.s.anim.Stop()
			m.s = m.newSession()
			m.paused = false
		}
		return m, nil

	case TickMsg:
		m.advance(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// advance moves the animation clock by the wall time since the last tick.
// Paused time is skipped so that the animation resumes where it stopped.
func (m Model) advance(now time.Time) {
	s := m.s
	if !s.last.IsZero() && !m.paused {
		s.clock += now.Sub(s.last).Seconds()
	}
	s.last = now
	if m.paused || s.anim.Finished() {
		return
	}

	s.anim.Step(s.clock)
	if v, dirty := s.out.Consume(); dirty {
		s.history = appendCapped(s.history, v)
		s.speeds = appendCapped(s.speeds, s.anim.State().Velocity)
	}
	if s.anim.Finished() {
		s.anim.Stop()
	}
}

func appendCapped(buf []float64, v float64) []float64 {
	if len(buf) == historyCapacity {
		copy(buf, buf[1:])
		buf = buf[:len(buf)-1]
	}
	return append(buf, v)
}

// Value is the current output value.
func (m Model) Value() float64 {
	return m.s.out.Value()
}

// Completed reports whether the completion callback fired, and with what.
func (m Model) Completed() (bool, bool) {
	return m.s.completed, m.s.finished
}

func (m Model) View() string {
	st := m.s.anim.State()
	p := m.s.anim.Params()

	status := StatusRunning.Render("running")
	switch {
	case st.Finished:
		status = StatusFinished.Render("finished")
	case m.paused:
		status = StatusPaused.Render("paused")
	}

	percent := 0.0
	if span := p.ToValue - p.FromValue; span != 0 {
		percent = (m.Value() - p.FromValue) / span
	}
	percent = max(0, min(percent, 1))

	var b strings.Builder
	b.WriteString(Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString("\n\n")
	b.WriteString(row("model", st.Kind.String()) + "\n")
	b.WriteString(row("value", fmt.Sprintf("%.5f", m.Value())) + "\n")
	b.WriteString(row("velocity", fmt.Sprintf("%.5f", st.Velocity)) + "\n")
	b.WriteString(row("loop", loopLabel(st.Loop, p.Iterations)) + "\n")
	b.WriteString(row("time", fmt.Sprintf("%.2fs", m.s.clock)) + "\n")
	b.WriteString(row("status", status) + "\n")

	if len(m.s.history) > 1 {
		b.WriteString("\n")
		b.WriteString(asciigraph.Plot(m.s.history,
			asciigraph.Height(8),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("value"),
		))
		b.WriteString("\n\n")
		b.WriteString(Subtle.Render("velocity ") + SparklineChart(m.s.speeds, graphWidth))
		b.WriteString("\n")
	}

	b.WriteString(KeyHint.Render("space pause • r restart • q quit"))
	return Panel.Render(b.String())
}

func loopLabel(loop, iterations int) string {
	if iterations == anim.Infinite {
		return fmt.Sprintf("%d/∞", loop)
	}
	return fmt.Sprintf("%d/%d", loop, iterations)
}
