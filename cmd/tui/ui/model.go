package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trinitynoble/BudgetBuddyProject/cmd/tui/client"
)

type View int

const (
	LoginView View = iota
	SignupView
	MenuView
	CreateTxView
	ListTxView
	CreateBudgetView
	ListBudgetView
)

type Model struct {
	currentView  View
	login        *LoginModel
	signup       *SignupModel
	menu         *MenuModel
	createTx     *CreateModel
	listTx       *ListModel
	createBudget *CreateModel
	listBudget   *ListModel
	apiClient    *client.Client
	width        int
	height       int

	isAuthenticated bool
	token           string
	userID          string
	userName        string
	userEmail       string
}

func NewModel(apiClient *client.Client) Model {
	loginModel := NewLoginModel()
	loginModel.SetClient(apiClient)

	signupModel := NewSignupModel()
	signupModel.SetClient(apiClient)

	createTx := NewCreateModel("transactions", "ADD TRANSACTION")
	createTx.SetClient(apiClient)

	listTx := NewListModel("transactions", "YOUR TRANSACTIONS")
	listTx.SetClient(apiClient)

	createBudget := NewCreateModel("budget", "ADD BUDGET ITEM")
	createBudget.SetClient(apiClient)

	listBudget := NewListModel("budget", "YOUR BUDGET ITEMS")
	listBudget.SetClient(apiClient)

	return Model{
		currentView:  LoginView,
		login:        loginModel,
		signup:       signupModel,
		menu:         NewMenuModel(),
		createTx:     createTx,
		listTx:       listTx,
		createBudget: createBudget,
		listBudget:   listBudget,
		apiClient:    apiClient,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginSuccessMsg:
		m.isAuthenticated = true
		m.token = msg.token
		m.userID = msg.userID
		m.userName = msg.name
		m.userEmail = msg.email
		m.apiClient.SetToken(msg.token)
		m.currentView = MenuView
		return m, nil

	case signupSuccessMsg:
		// Accounts log in separately after signup.
		m.signup.loading = false
		m.login.SetNotice("Account created for " + msg.email + ". Please log in.")
		m.currentView = LoginView
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}

		case "esc":
			// Inside list search, esc clears the search instead.
			if m.currentView == ListTxView && m.listTx.searching {
				break
			}
			if m.currentView == ListBudgetView && m.listBudget.searching {
				break
			}
			if m.isAuthenticated && m.currentView != MenuView && m.currentView != LoginView && m.currentView != SignupView {
				m.currentView = MenuView
				return m, nil
			}

		case "ctrl+s":
			if m.currentView == LoginView {
				m.currentView = SignupView
				return m, nil
			} else if m.currentView == SignupView {
				m.currentView = LoginView
				return m, nil
			}
		}
	}

	switch m.currentView {
	case LoginView:
		updatedLogin, cmd := m.login.Update(msg)
		m.login = updatedLogin.(*LoginModel)
		return m, cmd

	case SignupView:
		updatedSignup, cmd := m.signup.Update(msg)
		m.signup = updatedSignup.(*SignupModel)
		return m, cmd

	case MenuView:
		updatedMenu, cmd := m.menu.Update(msg)
		m.menu = updatedMenu.(*MenuModel)
		if m.menu.selected != -1 {
			switch m.menu.selected {
			case 0:
				m.currentView = CreateTxView
			case 1:
				m.currentView = ListTxView
				m.listTx.Reset()
			case 2:
				m.currentView = CreateBudgetView
			case 3:
				m.currentView = ListBudgetView
				m.listBudget.Reset()
			}
			m.menu.selected = -1
		}
		return m, cmd

	case CreateTxView:
		updated, cmd := m.createTx.Update(msg)
		m.createTx = updated.(*CreateModel)
		return m, cmd

	case ListTxView:
		updated, cmd := m.listTx.Update(msg)
		m.listTx = updated.(*ListModel)
		return m, cmd

	case CreateBudgetView:
		updated, cmd := m.createBudget.Update(msg)
		m.createBudget = updated.(*CreateModel)
		return m, cmd

	case ListBudgetView:
		updated, cmd := m.listBudget.Update(msg)
		m.listBudget = updated.(*ListModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.isAuthenticated && m.currentView != LoginView && m.currentView != SignupView {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("👤 " + m.userName)

		emailInfo := lipgloss.NewStyle().
			Foreground(Muted).
			Render(" (" + m.userEmail + ")")

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo + emailInfo)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case MenuView:
		mainContent = m.menu.View()
	case CreateTxView:
		mainContent = m.createTx.View()
	case ListTxView:
		mainContent = m.listTx.View()
	case CreateBudgetView:
		mainContent = m.createBudget.View()
	case ListBudgetView:
		mainContent = m.listBudget.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
