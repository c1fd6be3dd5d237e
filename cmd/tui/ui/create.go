package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trinitynoble/BudgetBuddyProject/cmd/tui/client"
)

type createSuccessMsg struct {
	record client.Record
}

type createErrorMsg struct {
	err error
}

// CreateModel is the add-record form. One instance serves transactions,
// another budget items.
type CreateModel struct {
	resource     string
	title        string
	inputs       [3]string // amount, description, date
	focusedInput int
	loading      bool
	result       *client.Record
	err          error
	apiClient    *client.Client
}

var createLabels = [3]string{"Amount:", "Description:", "Date:"}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

func NewCreateModel(resource, title string) *CreateModel {
	return &CreateModel{
		resource: resource,
		title:    title,
	}
}

func (m *CreateModel) SetClient(c *client.Client) {
	m.apiClient = c
}

func createCmd(c *client.Client, resource string, amount float64, description, date string) tea.Cmd {
	return func() tea.Msg {
		rec, err := c.CreateRecord(resource, amount, description, date)
		if err != nil {
			return createErrorMsg{err: err}
		}
		return createSuccessMsg{record: *rec}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createSuccessMsg:
		m.loading = false
		m.result = &msg.record
		m.err = nil
		m.inputs = [3]string{}
		return m, nil

	case createErrorMsg:
		m.loading = false
		m.err = msg.err
		m.result = nil
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focusedInput = (m.focusedInput + 1) % len(m.inputs)
		case "shift+tab":
			m.focusedInput = (m.focusedInput + len(m.inputs) - 1) % len(m.inputs)
		case "enter":
			amount, err := strconv.ParseFloat(m.inputs[0], 64)
			if err != nil {
				m.err = fmt.Errorf("amount must be a number")
				return m, nil
			}
			if strings.TrimSpace(m.inputs[1]) == "" {
				m.err = fmt.Errorf("description cannot be empty")
				return m, nil
			}
			if _, err := time.Parse("2006-01-02", m.inputs[2]); err != nil {
				m.err = fmt.Errorf("date must be YYYY-MM-DD")
				return m, nil
			}

			if m.apiClient != nil {
				m.loading = true
				m.err = nil
				m.result = nil
				return m, createCmd(m.apiClient, m.resource, amount, m.inputs[1], m.inputs[2])
			}
			m.err = fmt.Errorf("API client not connected")
		case "backspace":
			if len(m.inputs[m.focusedInput]) > 0 {
				m.inputs[m.focusedInput] = m.inputs[m.focusedInput][:len(m.inputs[m.focusedInput])-1]
			}
		case "ctrl+l":
			m.inputs = [3]string{}
			m.result = nil
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				m.inputs[m.focusedInput] += msg.String()
			}
		}
	}
	return m, nil
}

func (m *CreateModel) View() string {
	var b strings.Builder

	icon := lipgloss.NewStyle().Foreground(Accent).Render("💰")
	header := icon + " " + TitleStyle.Render(m.title) + " " + icon
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	for i, label := range createLabels {
		fieldLabel := LabelStyle.Render(label)
		var inputStyle lipgloss.Style
		if m.focusedInput == i {
			inputStyle = FocusedInputStyle
		} else {
			inputStyle = InputStyle
		}
		fieldValue := inputStyle.Width(50).Render(m.inputs[i])
		field := lipgloss.JoinHorizontal(lipgloss.Left, fieldLabel, fieldValue)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(field))
		b.WriteString("\n\n")
	}

	dateHint := InfoStyle.Render("(date: YYYY-MM-DD, e.g. 2025-01-15)")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(dateHint))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("Saving...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.result != nil {
		label := SuccessStyle.Render("✓ Saved:")
		value := ValueStyle.Render(fmt.Sprintf("%.2f  •  %s (%s)", m.result.Amount, m.result.Description, m.result.Date))
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(label + " " + value))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("Error: " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	help := InfoStyle.Render("tab switch  •  enter submit  •  ctrl+l clear  •  esc back")
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
