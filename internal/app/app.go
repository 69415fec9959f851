package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/keys"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/session"
	"github.com/nvu/mailterm/internal/state"
	"github.com/nvu/mailterm/internal/store"
	appsync "github.com/nvu/mailterm/internal/sync"
	"github.com/nvu/mailterm/internal/ui"
	"github.com/nvu/mailterm/internal/ui/accounts"
	adminview "github.com/nvu/mailterm/internal/ui/admin"
	"github.com/nvu/mailterm/internal/ui/command"
	"github.com/nvu/mailterm/internal/ui/compose"
	helpview "github.com/nvu/mailterm/internal/ui/help"
	loginview "github.com/nvu/mailterm/internal/ui/login"
	"github.com/nvu/mailterm/internal/ui/maillist"
	"github.com/nvu/mailterm/internal/ui/mailview"
	premiumview "github.com/nvu/mailterm/internal/ui/premium"
	registerview "github.com/nvu/mailterm/internal/ui/register"
	"github.com/nvu/mailterm/internal/ui/sidebar"
)

// ViewState identifies the active full-screen view.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewRegister
	ViewList
	ViewMail
	ViewCompose
	ViewAccounts
	ViewAdmin
	ViewPremium
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model. It owns the mailbox state, routes
// messages between views, and is the only place local mail state is
// patched from confirmed server responses.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout

	client    *api.Client
	repo      *session.Repository
	store     *store.SQLiteStore
	cfg       model.AppConfig
	keys      *keys.KeyMap
	mailbox   *state.Mailbox
	refresher *appsync.Refresher

	mailList     maillist.Model
	mailView     mailview.Model
	composeView  compose.Model
	loginView    loginview.Model
	registerView registerview.Model
	accountsView accounts.Model
	adminView    adminview.Model
	premiumView  premiumview.Model
	helpView     helpview.Model
	commandView  command.Model
	sidebarView  sidebar.Model

	account     string
	user        *model.User
	searchQuery string
	unreadOnly  bool
	statusMsg   string
	ready       bool
}

// New creates the root application model.
func New(client *api.Client, repo *session.Repository, s *store.SQLiteStore, cfg model.AppConfig) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:  ViewLogin,
		client:       client,
		repo:         repo,
		store:        s,
		cfg:          cfg,
		keys:         k,
		mailbox:      state.NewMailbox(),
		refresher:    appsync.New(client),
		mailList:     maillist.New(k, 80, 24),
		mailView:     mailview.New(k, 80, 24),
		composeView:  compose.New(80, 24),
		loginView:    loginview.New(80, 24),
		registerView: registerview.New(80, 24),
		accountsView: accounts.New(k, 80, 24),
		adminView:    adminview.New(k, 80, 24),
		premiumView:  premiumview.New(k, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
		sidebarView:  sidebar.New(22, 24),
	}
}

// Init resumes the most recent session if one is stored; otherwise the
// login screen is shown.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bootstrap(), m.refresher.Start())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.mailList.SetSize(contentWidth, contentHeight)
		m.mailView.SetSize(contentWidth, contentHeight)
		m.composeView.SetSize(contentWidth, contentHeight)
		m.loginView.SetSize(msg.Width, contentHeight)
		m.registerView.SetSize(msg.Width, contentHeight)
		m.accountsView.SetSize(contentWidth, contentHeight)
		m.adminView.SetSize(contentWidth, contentHeight)
		m.premiumView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.sidebarView.SetSize(m.layout.SidebarWidth, contentHeight)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case bootDoneMsg:
		return m.handleBootDone(msg)

	case profileMsg:
		return m.handleProfile(msg)

	case appsync.StatsResultMsg:
		return m.handleStatsResult(msg)

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case mailOpenedMsg:
		return m.handleMailOpened(msg)

	case draftLoadedMsg:
		return m.handleDraftLoaded(msg)

	case mailMutatedMsg:
		return m.handleMailMutated(msg)

	case mailDeletedMsg:
		return m.handleMailDeleted(msg)

	case batchDoneMsg:
		return m.handleBatchDone(msg)

	case composeDoneMsg:
		return m.handleComposeDone(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.statusMsg = "export failed: " + msg.err.Error()
		} else {
			m.statusMsg = "saved " + msg.path
		}
		return m, nil

	case cleanupDoneMsg:
		return m.handleCleanupDone(msg)

	case maillist.SelectedMailMsg:
		return m.handleMailSelected(msg.MailID)

	case maillist.SearchMsg:
		m.searchQuery = msg.Query
		return m, m.loadPage(m.mailbox.View(), 1)

	case maillist.PageRequestMsg:
		return m, m.loadPage(m.mailbox.View(), msg.Page)

	case mailview.BackMsg:
		m.currentView = ViewList
		m.mailbox.ClearSelection()
		return m, nil

	case mailview.ActionMsg:
		return m.handleMailAction(msg)

	case compose.SubmitMsg:
		m.currentView = ViewList
		m.statusMsg = "sending..."
		return m, m.submitCompose(msg)

	case compose.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case loginview.SubmitMsg:
		return m, m.login(msg.Email, msg.Password)

	case loginview.TwoFactorSubmitMsg:
		return m, m.verifyTwoFactor(msg.TempToken, msg.Code)

	case loginview.RegisterRequestMsg:
		m.currentView = ViewRegister
		cmd := m.registerView.Start()
		return m, cmd

	case loginview.CancelMsg:
		// Nowhere to go back to without a session.
		if m.account == "" {
			m.refresher.Stop()
			return m, tea.Quit
		}
		m.currentView = ViewList
		return m, nil

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case sessionReadyMsg:
		return m.handleSessionReady(msg)

	case registerview.SubmitMsg:
		m.statusMsg = "creating account..."
		return m, m.register(msg.Request)

	case registerview.CancelMsg:
		m.currentView = ViewLogin
		cmd := m.loginView.Start("")
		return m, cmd

	case registerDoneMsg:
		return m.handleRegisterDone(msg)

	case registerRejectedMsg:
		cmd := m.registerView.SetError(msg.reason)
		return m, cmd

	case sessionsLoadedMsg:
		m.accountsView.SetSessions(msg.sessions, msg.active)
		return m, nil

	case accounts.SwitchMsg:
		cmd := m.switchAccount(msg.Email)
		return m, cmd

	case accounts.AddMsg:
		m.currentView = ViewLogin
		cmd := m.loginView.Start("")
		return m, cmd

	case accounts.SignOutMsg:
		return m, m.signOut(msg.Email)

	case accounts.BackMsg:
		m.currentView = ViewList
		return m, nil

	case accountSwitchedMsg:
		return m.handleAccountSwitched(msg)

	case signedOutMsg:
		return m.handleSignedOut(msg)

	case adminview.UsersLoadedMsg:
		var cmd tea.Cmd
		m.adminView, cmd = m.adminView.Update(msg)
		return m, cmd

	case adminview.ToggleRoleMsg:
		return m, m.updateUserRole(msg.UserID, msg.Role)

	case adminview.ToggleStatusMsg:
		return m, m.updateUserStatus(msg.UserID, msg.Status)

	case adminview.DeleteUserMsg:
		return m, m.deleteUser(msg.UserID)

	case adminview.BackMsg:
		m.currentView = ViewList
		return m, nil

	case premiumview.DomainsLoadedMsg:
		var cmd tea.Cmd
		m.premiumView, cmd = m.premiumView.Update(msg)
		return m, cmd

	case premiumview.CreateMsg:
		return m, m.createPremium(msg.Domain)

	case premiumview.UpdateMsg:
		return m, m.updatePremium(msg.Domain)

	case premiumview.ToggleMsg:
		return m, m.togglePremium(msg.ID)

	case premiumview.DeleteMsg:
		return m, m.deletePremium(msg.ID)

	case premiumview.BackMsg:
		m.currentView = ViewList
		return m, nil

	case adminDoneMsg:
		return m.handleAdminDone(msg)

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case authLostMsg:
		return m.handleAuthLost()

	case flashMsg:
		m.statusMsg = string(msg)
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if handled, mdl, cmd := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
		return m.updateActiveView(msg)
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work across views. Form views
// keep full key ownership so typing is never intercepted.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.refresher.Stop()
		return true, m, tea.Quit
	}

	switch m.currentView {
	case ViewLogin, ViewRegister, ViewCompose, ViewCommand:
		return false, m, nil
	case ViewPremium:
		// The premium view embeds an edit form; leave keys to it.
		return false, m, nil
	case ViewList:
		if m.mailList.Searching() {
			return false, m, nil
		}
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewList {
			m.refresher.Stop()
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case ":":
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return true, m, cmd
	}

	if m.currentView != ViewList && m.currentView != ViewMail {
		return false, m, nil
	}

	switch msg.String() {
	case "c":
		m.previousView = m.currentView
		m.currentView = ViewCompose
		cmd := m.composeView.StartNew()
		return true, m, cmd

	case "r":
		m.refresher.Trigger()
		return true, m, m.loadPage(m.mailbox.View(), 1)

	case "a":
		m.previousView = m.currentView
		m.currentView = ViewAccounts
		return true, m, m.loadSessions()
	}

	if m.currentView != ViewList {
		return false, m, nil
	}

	// List-only actions: view switching and mutations on marked mails.
	switch msg.String() {
	case "g":
		m.searchQuery = ""
		return true, m, m.loadPage(nextFolderView(m.mailbox.View()), 1)

	case "l":
		m.searchQuery = ""
		return true, m, m.loadPage(nextCategoryView(m.mailbox.View()), 1)

	case "*":
		m.searchQuery = ""
		return true, m, m.loadPage(state.StarredView(), 1)

	case "S":
		m.searchQuery = ""
		return true, m, m.loadPage(state.ScheduledView(), 1)

	case "s":
		return true, m, m.toggleStar(m.mailList.SelectedID())

	case "i":
		return true, m, m.toggleImportant(m.mailList.SelectedID())

	case "u":
		return true, m, m.batchToggleRead()

	case "e":
		return true, m, m.batchMove(model.FolderArchive)

	case "m":
		return true, m, m.batchMove(model.FolderInbox)

	case "!":
		return true, m, m.batchSpam()

	case "d":
		return true, m, m.batchTrash()

	case "z":
		return true, m, m.snoozeMail(m.mailList.SelectedID())

	case "E":
		return true, m, m.exportMail(m.mailbox.Get(m.mailList.SelectedID()))

	case "R":
		if sel := m.mailbox.Get(m.mailList.SelectedID()); sel != nil {
			m.previousView = m.currentView
			m.currentView = ViewCompose
			cmd := m.composeView.StartReply(sel)
			return true, m, cmd
		}
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewRegister:
		m.registerView, cmd = m.registerView.Update(msg)
	case ViewList:
		m.mailList, cmd = m.mailList.Update(msg)
	case ViewMail:
		m.mailView, cmd = m.mailView.Update(msg)
	case ViewCompose:
		m.composeView, cmd = m.composeView.Update(msg)
	case ViewAccounts:
		m.accountsView, cmd = m.accountsView.Update(msg)
	case ViewAdmin:
		m.adminView, cmd = m.adminView.Update(msg)
	case ViewPremium:
		m.premiumView, cmd = m.premiumView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("mailterm", m.account)
	statusBar := m.layout.RenderStatusBar(m.keyHints())
	content := m.renderContent()

	if m.currentView == ViewList {
		return m.layout.RenderWithSidebar(
			header, m.sidebarView.View(), content, statusBar)
	}
	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewRegister:
		return m.registerView.View()
	case ViewList:
		return m.mailList.View()
	case ViewMail:
		return m.mailView.View()
	case ViewCompose:
		return m.composeView.View()
	case ViewAccounts:
		return m.accountsView.View()
	case ViewAdmin:
		return m.adminView.View()
	case ViewPremium:
		return m.premiumView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// keyHints returns status-bar hints, or the transient status message
// when one is pending.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewLogin, ViewRegister, ViewCompose:
		return "enter next field | esc cancel"
	case ViewMail:
		return "esc back | R reply | s star | d trash | E export | j/k scroll"
	case ViewAccounts:
		return "enter switch | n add | x sign out | esc back"
	case ViewAdmin:
		return "r role | t active | x delete | esc back"
	case ViewPremium:
		return "n new | enter edit | t toggle | x delete | esc back"
	case ViewHelp:
		return "? close help"
	case ViewCommand:
		return "enter execute | esc back"
	default:
		return "q quit | ? help | c compose | / search | space mark | g folder | a accounts"
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "quit", "q":
		m.refresher.Stop()
		return tea.Quit
	case "inbox":
		return m.loadPage(state.FolderView(model.FolderInbox), 1)
	case "sent":
		return m.loadPage(state.FolderView(model.FolderSent), 1)
	case "drafts":
		return m.loadPage(state.FolderView(model.FolderDrafts), 1)
	case "archive":
		return m.loadPage(state.FolderView(model.FolderArchive), 1)
	case "spam":
		return m.loadPage(state.FolderView(model.FolderSpam), 1)
	case "trash":
		return m.loadPage(state.FolderView(model.FolderTrash), 1)
	case "starred":
		return m.loadPage(state.StarredView(), 1)
	case "scheduled":
		return m.loadPage(state.ScheduledView(), 1)
	case "accounts":
		m.previousView = m.currentView
		m.currentView = ViewAccounts
		return m.loadSessions()
	case "users":
		if m.user == nil || !m.user.IsAdmin() {
			m.statusMsg = "admin only"
			return nil
		}
		m.previousView = m.currentView
		m.currentView = ViewAdmin
		return m.loadUsers()
	case "premium":
		if m.user == nil || !m.user.IsAdmin() {
			m.statusMsg = "admin only"
			return nil
		}
		m.previousView = m.currentView
		m.currentView = ViewPremium
		return m.loadPremium()
	case "unread":
		m.unreadOnly = !m.unreadOnly
		if m.unreadOnly {
			m.statusMsg = "showing unread only"
		} else {
			m.statusMsg = "showing all mail"
		}
		return m.loadPage(m.mailbox.View(), 1)
	case "cleanup-trash":
		return m.cleanupTrash(30)
	case "cancel-schedule":
		return m.cancelSchedule(m.mailList.SelectedID())
	case "settings":
		return m.pushSettings()
	case "logout":
		return m.signOut(m.account)
	default:
		if rest, ok := commandArg(cmd, "category"); ok {
			return m.toggleCategory(m.mailList.SelectedID(), model.Category(rest))
		}
		if rest, ok := commandArg(cmd, "label"); ok {
			return m.toggleLabel(m.mailList.SelectedID(), rest)
		}
		if cat := model.Category(cmd); model.IsValidCategory(cat) {
			return m.loadPage(state.CategoryView(cat), 1)
		}
		log.Debug().Str("command", cmd).Msg("unknown palette command")
		m.statusMsg = "unknown command: " + cmd
		return nil
	}
}
