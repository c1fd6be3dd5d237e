package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trinitynoble/BudgetBuddyProject/cmd/tui/client"
)

type listSuccessMsg struct {
	records []client.Record
}

type listErrorMsg struct {
	err error
}

type deleteSuccessMsg struct{}

type deleteErrorMsg struct {
	err error
}

// ListModel shows one resource's records with search and delete. One
// instance serves transactions, another budget items.
type ListModel struct {
	resource    string
	title       string
	records     []client.Record
	cursor      int
	searchInput string
	searching   bool
	loading     bool
	err         error
	apiClient   *client.Client
	loaded      bool
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func NewListModel(resource, title string) *ListModel {
	return &ListModel{
		resource: resource,
		title:    title,
		records:  []client.Record{},
	}
}

func (m *ListModel) SetClient(c *client.Client) {
	m.apiClient = c
}

// Reset forces a reload the next time the view is shown.
func (m *ListModel) Reset() {
	m.loaded = false
	m.searchInput = ""
	m.searching = false
	m.cursor = 0
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func listCmd(c *client.Client, resource, query string) tea.Cmd {
	return func() tea.Msg {
		var records []client.Record
		var err error
		if query != "" {
			records, err = c.SearchRecords(resource, query)
		} else {
			records, err = c.ListRecords(resource)
		}
		if err != nil {
			return listErrorMsg{err: err}
		}
		return listSuccessMsg{records: records}
	}
}

func deleteCmd(c *client.Client, resource string, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteRecord(resource, id); err != nil {
			return deleteErrorMsg{err: err}
		}
		return deleteSuccessMsg{}
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listSuccessMsg:
		m.loading = false
		m.records = msg.records
		m.err = nil
		m.loaded = true
		if m.cursor >= len(m.records) {
			m.cursor = 0
		}
		return m, nil

	case listErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case deleteSuccessMsg:
		m.loading = true
		return m, listCmd(m.apiClient, m.resource, m.searchInput)

	case deleteErrorMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.searching = false
				m.loading = true
				m.err = nil
				return m, listCmd(m.apiClient, m.resource, m.searchInput)
			case "esc":
				m.searching = false
				m.searchInput = ""
				m.loading = true
				return m, listCmd(m.apiClient, m.resource, "")
			case "backspace":
				if len(m.searchInput) > 0 {
					m.searchInput = m.searchInput[:len(m.searchInput)-1]
				}
			default:
				if len(msg.String()) == 1 {
					m.searchInput += msg.String()
				}
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case "/":
			m.searching = true
			m.searchInput = ""
		case "d":
			if !m.loading && m.cursor < len(m.records) {
				return m, deleteCmd(m.apiClient, m.resource, m.records[m.cursor].ID)
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, listCmd(m.apiClient, m.resource, m.searchInput)
			}
		}
	}

	if !m.loaded && !m.loading && m.apiClient != nil {
		m.loading = true
		return m, listCmd(m.apiClient, m.resource, "")
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render(m.title)
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n")

	if m.searching {
		searchLabel := LabelStyle.Width(10).Render("Search:")
		searchValue := FocusedInputStyle.Width(50).Render(m.searchInput)
		searchField := lipgloss.JoinHorizontal(lipgloss.Left, searchLabel, searchValue)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(searchField))
		b.WriteString("\n")
	} else if m.searchInput != "" {
		filter := InfoStyle.Render("filtered by: " + m.searchInput)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(filter))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.loading {
		loading := lipgloss.NewStyle().
			Foreground(Accent).
			Render("⏳ Loading...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(loading))
		b.WriteString("\n")
	} else if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(errMsg))
		b.WriteString("\n")
	} else if len(m.records) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("📝 Nothing here yet. Add one first!")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(empty))
		b.WriteString("\n")
	} else {
		for i, rec := range m.records {
			var cardStyle lipgloss.Style
			if i == m.cursor {
				cardStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(Accent).
					Padding(0, 2).
					Width(70).
					MarginBottom(1)
			} else {
				cardStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(Muted).
					Padding(0, 2).
					Width(70).
					MarginBottom(1)
			}

			amountStyle := SuccessStyle
			if rec.Amount < 0 {
				amountStyle = ErrorStyle
			}
			amountLine := amountStyle.Render(fmt.Sprintf("%.2f", rec.Amount)) +
				lipgloss.NewStyle().Foreground(Muted).Render("  •  "+rec.Date)

			descLine := lipgloss.NewStyle().Foreground(Text).Render(truncate(rec.Description, 60))

			card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, amountLine, descLine))
			b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(card))
		}
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  / search  •  d delete  •  r refresh  •  esc back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
