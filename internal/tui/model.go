// Package tui is the terminal front-end. It drives an app.Controller in-process.
package tui

import (
	"context"
	"errors"
	"time"

	"book-deconstructor/internal/app"

	tea "github.com/charmbracelet/bubbletea"
)

// Focus tracks which row has keyboard focus.
type Focus int

const (
	FocusInput Focus = iota
	FocusHistory
)

const spinnerInterval = 120 * time.Millisecond

const inFlightNoticeZh = "正在拆解中，请稍候。"

// Model is the root bubbletea model.
type Model struct {
	ctrl *app.Controller
	snap app.Snapshot

	// UI state
	focus    Focus
	selected int
	scroll   int
	frame    int
	notice   string
	width    int
	height   int
}

// New creates a Model over ctrl.
func New(ctrl *app.Controller) Model {
	return Model{
		ctrl: ctrl,
		snap: ctrl.Snapshot(),
	}
}

// Init has nothing to start; history was loaded with the controller.
func (m Model) Init() tea.Cmd {
	return nil
}

// runCmd performs the gateway call off the UI loop.
func runCmd(ctrl *app.Controller, req *app.Request) tea.Cmd {
	return func() tea.Msg {
		req.Run(context.Background())
		return DeconstructDoneMsg{Snapshot: ctrl.Snapshot()}
	}
}

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case DeconstructDoneMsg:
		m.snap = msg.Snapshot
		m.notice = ""
		m.scroll = 0
		m.clampSelection()
		return m, nil

	case SpinnerTickMsg:
		if !m.snap.Loading() {
			return m, nil
		}
		m.frame++
		return m, spinnerTickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyCtrlC, KeyEsc:
		return m, tea.Quit

	case KeyTab:
		if m.focus == FocusInput && len(m.snap.History) > 0 {
			m.focus = FocusHistory
			m.clampSelection()
		} else {
			m.focus = FocusInput
		}
		return m, nil

	case KeyEnter:
		if m.focus == FocusHistory {
			return m.start(m.ctrl.BeginHistory(m.selected))
		}
		return m.start(m.ctrl.Begin(m.snap.Input))

	case KeyRetry:
		return m.start(m.ctrl.BeginRetry())

	case KeyUp:
		if m.focus == FocusHistory {
			if m.selected > 0 {
				m.selected--
			}
		} else if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case KeyDown:
		if m.focus == FocusHistory {
			if m.selected < len(m.snap.History)-1 {
				m.selected++
			}
		} else if m.scroll < m.maxScroll() {
			m.scroll++
		}
		return m, nil

	case KeyBackspace:
		if m.focus == FocusInput {
			runes := []rune(m.snap.Input)
			if len(runes) > 0 {
				m.setInput(string(runes[:len(runes)-1]))
			}
		}
		return m, nil

	case KeyClear:
		if m.focus == FocusInput {
			m.setInput("")
		}
		return m, nil

	case KeySpace:
		if m.focus == FocusInput {
			m.setInput(m.snap.Input + " ")
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes && m.focus == FocusInput {
		m.setInput(m.snap.Input + string(msg.Runes))
	}
	return m, nil
}

func (m *Model) setInput(text string) {
	m.ctrl.SetInput(text)
	m.snap = m.ctrl.Snapshot()
}

// start runs an accepted request; rejections only refresh the view.
func (m Model) start(req *app.Request, err error) (tea.Model, tea.Cmd) {
	m.snap = m.ctrl.Snapshot()
	if err != nil {
		if errors.Is(err, app.ErrInFlight) {
			m.notice = inFlightNoticeZh
		}
		return m, nil
	}
	m.notice = ""
	m.scroll = 0
	m.frame = 0
	m.focus = FocusInput
	return m, tea.Batch(runCmd(m.ctrl, req), spinnerTickCmd())
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.snap.History) {
		m.selected = max(0, len(m.snap.History)-1)
	}
	if len(m.snap.History) == 0 {
		m.focus = FocusInput
	}
}
