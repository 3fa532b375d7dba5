package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/linkmark/internal/styles"
)

// BrowseData holds the bookmarks found in the bookmark folder
type BrowseData struct {
	Folder    string
	Bookmarks []BookmarkInfo
}

// BookmarkInfo describes one bookmark file
type BookmarkInfo struct {
	Path      string
	Domain    string
	Title     string
	URL       string
	Available bool
}

// BrowseMsg is sent when browse data is ready
type BrowseMsg struct {
	Data *BrowseData
	Err  error
}

type browseModel struct {
	table       table.Model
	viewport    viewport.Model
	data        *BrowseData
	err         error
	ready       bool
	showingItem bool
	selected    *BookmarkInfo
	width       int
	height      int
}

// InitBrowseModel creates a new bookmark browser model
func InitBrowseModel() browseModel {
	columns := []table.Column{
		{Title: "Domain", Width: 24},
		{Title: "Title", Width: 48},
		{Title: "Status", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = styles.SelectedStyle.Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 10)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return browseModel{
		table:    t,
		viewport: vp,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-10, 3))
		m.viewport.Width = max(msg.Width-4, 20)

	case tea.KeyMsg:
		if m.showingItem {
			switch msg.String() {
			case "q", "esc", "enter":
				m.showingItem = false
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j", "pgup", "pgdown", "home", "end":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "enter", "d":
			if m.data != nil && len(m.data.Bookmarks) > 0 {
				idx := m.table.Cursor()
				if idx >= 0 && idx < len(m.data.Bookmarks) {
					m.selected = &m.data.Bookmarks[idx]
					m.showingItem = true
					m.viewport.SetContent(RenderBookmark(m.selected, max(m.viewport.Width-4, 40)))
					m.viewport.GotoTop()
				}
			}
			return m, nil
		}

	case BrowseMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Bookmarks))
			for _, bm := range m.data.Bookmarks {
				status := "✓ available"
				if !bm.Available {
					status = "✗ unavailable"
				}
				domain := bm.Domain
				if domain == "" {
					domain = "-"
				}
				rows = append(rows, table.Row{domain, bm.Title, status})
			}
			m.table.SetRows(rows)
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("linkmark bookmarks"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		b.WriteString(helpStyle.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	}

	if m.showingItem && m.selected != nil {
		b.WriteString(labelStyle.Render("Bookmark: " + m.selected.Path))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.data.Bookmarks) == 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("No bookmarks in %s yet", m.data.Folder)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("%s: %d bookmark(s)", m.data.Folder, len(m.data.Bookmarks))))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter/d details • q quit"))
	b.WriteString("\n")

	return b.String()
}
