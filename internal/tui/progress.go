package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/linkmark/internal/bookmark"
	"github.com/gerunddev/linkmark/internal/notify"
	"github.com/gerunddev/linkmark/internal/styles"
)

// maxRecent is how many notices stay on screen while a batch runs
const maxRecent = 8

// NoticeMsg carries one notice from the running batch
type NoticeMsg string

// BatchDoneMsg is sent when the batch returns
type BatchDoneMsg struct {
	Result *bookmark.BatchResult
	Err    error
}

// progressModel is the Bubble Tea model for a running batch
type progressModel struct {
	spinner  spinner.Model
	note     string
	status   string
	recent   []string
	complete bool
	result   *bookmark.BatchResult
	err      error
	quitting bool
}

// InitProgressModel creates a progress model for a batch over note
func InitProgressModel(note string) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return progressModel{
		spinner: s,
		note:    note,
		status:  "Scanning " + note + " for links...",
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case NoticeMsg:
		text := string(msg)
		if strings.HasPrefix(text, "bookmarking: ") {
			m.status = "Fetching " + strings.TrimPrefix(text, "bookmarking: ")
		}
		m.recent = append(m.recent, text)
		if len(m.recent) > maxRecent {
			m.recent = m.recent[len(m.recent)-maxRecent:]
		}
		return m, nil

	case BatchDoneMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m progressModel) View() string {
	if m.complete {
		return m.summary()
	}
	if m.quitting {
		return helpStyle.Render("Interrupted") + "\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status))
	for _, n := range m.recent {
		b.WriteString("  " + notify.Render(n) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("q quit") + "\n")
	return b.String()
}

func (m progressModel) summary() string {
	if m.err != nil {
		return errorStyle.Render("✗ Bookmarking failed: "+m.err.Error()) + "\n"
	}

	r := m.result
	if r == nil || r.Links == 0 {
		return successStyle.Render("✓ No links found in "+m.note) + "\n"
	}

	msg := successStyle.Render(fmt.Sprintf("✓ Bookmarked %d link(s)", r.Links))
	if r.Reused > 0 {
		msg += ", " + helpStyle.Render(fmt.Sprintf("%d already bookmarked", r.Reused))
	}
	if r.Unavailable > 0 {
		msg += ", " + warningStyle.Render(fmt.Sprintf("%d unavailable", r.Unavailable))
	}
	msg += "\n" + helpStyle.Render(fmt.Sprintf("Completed in %v", r.Duration.Round(time.Millisecond))) + "\n"

	return msg
}
