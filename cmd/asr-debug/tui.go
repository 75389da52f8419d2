package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/asr-runtime/session"
	"github.com/wippyai/asr-runtime/timer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))
)

// headerLines is the number of lines the view draws above the log pane.
const headerLines = 6

type stepMsg struct{}

type runModel struct {
	ctx      context.Context
	sess     *session.Session
	host     *debugHost
	filename string
	maxSteps int

	steps   int
	stepErr error
	log     viewport.Model
	seen    int
	ready   bool
}

func newRunModel(ctx context.Context, filename string, sess *session.Session, host *debugHost, maxSteps int) *runModel {
	return &runModel{
		ctx:      ctx,
		sess:     sess,
		host:     host,
		filename: filename,
		maxSteps: maxSteps,
		log:      viewport.New(80, 10),
	}
}

func (m *runModel) Init() tea.Cmd {
	return m.scheduleStep(0)
}

func (m *runModel) scheduleStep(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return stepMsg{} })
}

func (m *runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.host.Start()
		case " ":
			m.host.Split()
		case "k":
			m.host.SkipSplit()
		case "u":
			m.host.UndoSplit()
		case "p":
			m.host.TogglePause()
		case "r":
			m.host.Reset()
		default:
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			return m, cmd
		}
		m.refreshLog()

	case tea.WindowSizeMsg:
		m.log.Width = msg.Width - 2
		m.log.Height = max(msg.Height-headerLines-len(m.host.segments)-4, 3)
		m.ready = true
		m.refreshLog()

	case stepMsg:
		m.steps++
		m.stepErr = m.sess.Step(m.ctx)
		m.refreshLog()
		if m.maxSteps > 0 && m.steps >= m.maxSteps {
			return m, tea.Quit
		}
		return m, m.scheduleStep(m.sess.TickRate())
	}
	return m, nil
}

// refreshLog appends new host events and script messages to the log pane.
func (m *runModel) refreshLog() {
	lines := make([]string, 0, len(m.host.events)+len(m.host.logs))
	for _, e := range m.host.events {
		lines = append(lines, labelStyle.Render("timer ")+e)
	}
	for _, l := range m.host.logs {
		lines = append(lines, "script "+l)
	}
	atBottom := m.log.AtBottom()
	m.log.SetContent(strings.Join(lines, "\n"))
	if atBottom || len(lines) != m.seen {
		m.log.GotoBottom()
	}
	m.seen = len(lines)
}

func (m *runModel) View() string {
	if !m.ready {
		return "Loading script..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Auto Splitter"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s   %s %s\n",
		labelStyle.Render("state"), m.host.state,
		labelStyle.Render("tick"), m.sess.TickRate().Round(time.Microsecond))
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("real"), clockStyle.Render(formatDuration(m.host.Elapsed())))
	if m.host.gameTimeSet {
		gt := formatDuration(m.host.gameTime)
		if m.host.gamePaused {
			gt += " (paused)"
		}
		fmt.Fprintf(&b, "   %s %s", labelStyle.Render("game"), clockStyle.Render(gt))
	}
	b.WriteString("\n")
	if m.stepErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("step %d: %v", m.steps, m.stepErr)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewSplits())
	b.WriteString(paneStyle.Render(m.log.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s start • space split • k skip • u undo • p pause • r reset • ↑/↓ scroll • q quit"))

	return b.String()
}

func (m *runModel) viewSplits() string {
	rows := max(len(m.host.segments), len(m.host.splits))
	if rows == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < rows; i++ {
		name := m.host.segmentName(i)
		at := "-"
		style := lipgloss.NewStyle()
		if i < len(m.host.splits) {
			s := m.host.splits[i]
			at = formatDuration(s.at)
			if s.skipped {
				style = skippedStyle
			}
		} else if i == len(m.host.splits) && m.host.state != timer.NotRunning {
			name = "> " + name
		}
		fmt.Fprintf(&b, "%-24s %s\n", style.Render(name), at)
	}
	b.WriteString("\n")
	return b.String()
}
