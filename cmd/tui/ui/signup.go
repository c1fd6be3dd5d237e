package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trinitynoble/BudgetBuddyProject/cmd/tui/client"
)

type signupSuccessMsg struct {
	email string
}

type signupErrorMsg struct {
	err error
}

type SignupModel struct {
	inputs       [5]string // first name, last name, email, phone, password
	focusedInput int
	loading      bool
	err          error
	apiClient    *client.Client
}

var signupLabels = [5]string{"First name:", "Last name:", "Email:", "Phone:", "Password:"}

func NewSignupModel() *SignupModel {
	return &SignupModel{
		focusedInput: 0,
	}
}

func (m *SignupModel) SetClient(c *client.Client) {
	m.apiClient = c
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func signupCmd(c *client.Client, firstName, lastName, email, phone, password string) tea.Cmd {
	return func() tea.Msg {
		if err := c.Register(firstName, lastName, email, phone, password); err != nil {
			return signupErrorMsg{err: err}
		}
		return signupSuccessMsg{email: email}
	}
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signupSuccessMsg:
		m.loading = false
		m.err = nil
		return m, nil

	case signupErrorMsg:
		m.loading = false
		m.err = msg.err
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
			for i, value := range m.inputs {
				if value == "" {
					m.err = fmt.Errorf("%s cannot be empty", strings.TrimSuffix(strings.ToLower(signupLabels[i]), ":"))
					return m, nil
				}
			}
			if len(m.inputs[4]) < 8 {
				m.err = fmt.Errorf("password must be at least 8 characters")
				return m, nil
			}

			if m.apiClient != nil {
				m.loading = true
				m.err = nil
				return m, signupCmd(m.apiClient, m.inputs[0], m.inputs[1], m.inputs[2], m.inputs[3], m.inputs[4])
			}
			m.err = fmt.Errorf("API client not connected")
		case "backspace":
			if len(m.inputs[m.focusedInput]) > 0 {
				m.inputs[m.focusedInput] = m.inputs[m.focusedInput][:len(m.inputs[m.focusedInput])-1]
			}
		case "ctrl+l":
			m.inputs = [5]string{}
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				m.inputs[m.focusedInput] += msg.String()
			}
		}
	}
	return m, nil
}

func (m *SignupModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Success).
		Bold(true).
		Render("✨ SIGN UP")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Create a new account to get started.")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginBottom(3).
		Render(subtitle))
	b.WriteString("\n\n")

	for i, label := range signupLabels {
		fieldLabel := LabelStyle.Width(15).Render(label)
		var inputStyle lipgloss.Style
		if m.focusedInput == i {
			inputStyle = FocusedInputStyle
		} else {
			inputStyle = InputStyle
		}

		value := m.inputs[i]
		if i == 4 {
			value = strings.Repeat("•", len(value))
		}

		fieldValue := inputStyle.Width(50).Render(value)
		field := lipgloss.JoinHorizontal(lipgloss.Left, fieldLabel, fieldValue)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(field))
		b.WriteString("\n\n")
	}

	passHint := InfoStyle.Render("(password: min 8 characters)")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(passHint))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("🔄 Creating account...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter signup  •  ctrl+l clear  •  ctrl+s login  •  ctrl+c quit")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Success).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
