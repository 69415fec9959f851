package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/state"
)

// settingsTimeout bounds the fire-and-forget settings push.
const settingsTimeout = 3 * time.Second

// bootstrap restores the active account from the local session store.
func (m Model) bootstrap() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sess, err := repo.Active(ctx)
		if err != nil || sess == nil {
			return bootDoneMsg{err: err}
		}

		token, tokenErr := repo.Token(sess.Email)
		if tokenErr != nil {
			log.Debug().Err(tokenErr).Str("account", sess.Email).
				Msg("reading session token")
			return bootDoneMsg{sess: sess}
		}
		return bootDoneMsg{sess: sess, token: token}
	}
}

func (m Model) handleBootDone(msg bootDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Warn().Err(msg.err).Msg("restoring session")
	}

	if msg.sess == nil || msg.token == "" {
		email := ""
		if msg.sess != nil {
			email = msg.sess.Email
		}
		m.currentView = ViewLogin
		cmd := m.loginView.Start(email)
		return m, cmd
	}

	m.client.SetToken(msg.token)
	m.account = msg.sess.Email
	user := msg.sess.User
	m.user = &user
	m.currentView = ViewList
	m.refresher.Trigger()

	return m, tea.Batch(
		m.loadPage(state.FolderView(model.FolderInbox), 1),
		m.refreshProfile(),
	)
}

// refreshProfile revalidates the restored session and updates the
// cached user snapshot.
func (m Model) refreshProfile() tea.Cmd {
	client := m.client
	repo := m.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := client.Me(ctx)
		if err != nil {
			return profileMsg{err: err}
		}
		if err := repo.UpdateSnapshot(ctx, user.Email, *user); err != nil {
			log.Debug().Err(err).Msg("updating session snapshot")
		}
		return profileMsg{user: user}
	}
}

func (m Model) handleProfile(msg profileMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.handleAuthLost()
		}
		log.Debug().Err(msg.err).Msg("refreshing profile")
		return m, nil
	}
	m.user = msg.user
	return m, nil
}

// login starts a credentials login.
func (m Model) login(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.Login(ctx, email, password)
		return loginDoneMsg{email: email, result: result, err: err}
	}
}

// verifyTwoFactor completes a pending 2FA login.
func (m Model) verifyTwoFactor(tempToken, code string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.VerifyTwoFactorLogin(ctx, tempToken, code)
		return loginDoneMsg{result: result, err: err}
	}
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		reason := msg.err.Error()
		if api.IsAuthError(msg.err) {
			reason = "invalid credentials"
		}
		m.currentView = ViewLogin
		cmd := m.loginView.SetError(reason)
		return m, cmd
	}

	if msg.result.RequiresTwoFactor {
		m.currentView = ViewLogin
		cmd := m.loginView.StartTwoFactor(msg.result.TempToken)
		return m, cmd
	}

	if msg.result.User == nil {
		m.currentView = ViewLogin
		cmd := m.loginView.SetError("login response missing profile")
		return m, cmd
	}
	return m, m.persistSession(msg.result.User)
}

// persistSession stores the fresh session locally: profile snapshot in
// the session store, token in the keyring, active marker flipped.
func (m Model) persistSession(user *model.User) tea.Cmd {
	repo := m.repo
	token := m.client.Token()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sess := model.Session{
			Email:   user.Email,
			User:    *user,
			LoginAt: time.Now().UTC(),
		}
		if err := repo.Upsert(ctx, sess, token); err != nil {
			return sessionReadyMsg{err: err}
		}
		return sessionReadyMsg{sess: &sess}
	}
}

func (m Model) handleSessionReady(msg sessionReadyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = "saving session: " + msg.err.Error()
		return m, nil
	}

	m.account = msg.sess.Email
	user := msg.sess.User
	m.user = &user
	m.searchQuery = ""
	m.currentView = ViewList
	m.refresher.Trigger()
	return m, m.loadPage(state.FolderView(model.FolderInbox), 1)
}

// register runs the server-side checks, creates the account, and logs
// straight in.
func (m Model) register(req api.RegisterRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*requestTimeout)
		defer cancel()

		check, err := client.CheckEmail(ctx, req.Email)
		if err != nil {
			return registerDoneMsg{err: err}
		}
		if !check.OK {
			return registerRejectedMsg{reason: messageOr(check.Message, "email address is not available")}
		}

		if req.PremiumCode != "" {
			check, err = client.CheckPremiumCode(ctx, req.PremiumCode)
			if err != nil {
				return registerDoneMsg{err: err}
			}
			if !check.OK {
				return registerRejectedMsg{reason: messageOr(check.Message, "premium code is not valid")}
			}
		}

		if _, err := client.Register(ctx, req); err != nil {
			return registerDoneMsg{err: err}
		}

		result, err := client.Login(ctx, req.Email, req.Password)
		return loginDoneMsg{email: req.Email, result: result, err: err}
	}
}

func (m Model) handleRegisterDone(msg registerDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		return m, nil
	}
	m.currentView = ViewRegister
	cmd := m.registerView.SetError(msg.err.Error())
	return m, cmd
}

// loadSessions lists locally known accounts for the switcher.
func (m Model) loadSessions() tea.Cmd {
	repo := m.repo
	active := m.account
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sessions, err := repo.List(ctx)
		if err != nil {
			return flashMsg("loading accounts: " + err.Error())
		}
		return sessionsLoadedMsg{sessions: sessions, active: active}
	}
}

// switchAccount activates another locally known account from its cached
// snapshot, without touching the network. The profile is refreshed
// afterwards; only an auth-rejected refresh sends the user back through
// login with the email prefilled.
func (m Model) switchAccount(email string) tea.Cmd {
	if email == "" || email == m.account {
		return nil
	}
	repo := m.repo

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sess, err := repo.Get(ctx, email)
		if err != nil {
			return accountSwitchedMsg{email: email, err: err}
		}
		if sess == nil {
			return accountSwitchedMsg{email: email, needLogin: true}
		}

		token, err := repo.Token(email)
		if err != nil || token == "" {
			return accountSwitchedMsg{email: email, needLogin: true}
		}

		if err := repo.SetActive(ctx, email); err != nil {
			return accountSwitchedMsg{email: email, err: err}
		}
		user := sess.User
		return accountSwitchedMsg{email: email, user: &user, token: token}
	}
}

func (m Model) handleAccountSwitched(msg accountSwitchedMsg) (tea.Model, tea.Cmd) {
	if msg.needLogin {
		m.currentView = ViewLogin
		m.statusMsg = "session expired, sign in again"
		cmd := m.loginView.Start(msg.email)
		return m, cmd
	}
	if msg.err != nil {
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	m.client.SetToken(msg.token)
	m.account = msg.email
	m.user = msg.user
	m.searchQuery = ""
	m.currentView = ViewList
	m.refresher.Trigger()
	return m, tea.Batch(
		m.loadPage(state.FolderView(model.FolderInbox), 1),
		m.refreshProfile(),
	)
}

// signOut forgets an account. Signing out the active account promotes
// the most recently used remaining one, or drops to the login screen.
func (m Model) signOut(email string) tea.Cmd {
	if email == "" {
		return nil
	}
	client := m.client
	repo := m.repo
	wasActive := email == m.account

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if wasActive {
			// Best effort: the local state is cleared regardless.
			logoutCtx, logoutCancel := context.WithTimeout(ctx, settingsTimeout)
			if err := client.Logout(logoutCtx); err != nil {
				log.Debug().Err(err).Msg("server-side logout")
			}
			logoutCancel()
			client.ClearToken()
		}

		if err := repo.Remove(ctx, email); err != nil {
			return signedOutMsg{email: email, wasActive: wasActive, err: err}
		}

		if !wasActive {
			return signedOutMsg{email: email}
		}

		next, err := repo.PromoteNext(ctx)
		if err != nil || next == nil {
			return signedOutMsg{email: email, wasActive: true, err: err}
		}
		token, tokenErr := repo.Token(next.Email)
		if tokenErr != nil {
			log.Debug().Err(tokenErr).Str("account", next.Email).
				Msg("reading session token")
		}
		return signedOutMsg{email: email, wasActive: true, next: next, token: token}
	}
}

func (m Model) handleSignedOut(msg signedOutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	if !msg.wasActive {
		m.statusMsg = "signed out " + msg.email
		return m, m.loadSessions()
	}

	if msg.next == nil {
		m.account = ""
		m.user = nil
		m.currentView = ViewLogin
		cmd := m.loginView.Start("")
		return m, cmd
	}

	if msg.token == "" {
		m.account = ""
		m.user = nil
		m.currentView = ViewLogin
		m.statusMsg = "sign in to continue as " + msg.next.Email
		cmd := m.loginView.Start(msg.next.Email)
		return m, cmd
	}

	m.client.SetToken(msg.token)
	m.account = msg.next.Email
	user := msg.next.User
	m.user = &user
	m.searchQuery = ""
	m.currentView = ViewList
	m.statusMsg = "switched to " + msg.next.Email
	m.refresher.Trigger()
	return m, m.loadPage(state.FolderView(model.FolderInbox), 1)
}

// pushSettings syncs the current display settings to the server,
// fire-and-forget with a short timeout.
func (m Model) pushSettings() tea.Cmd {
	if m.user == nil {
		return nil
	}
	client := m.client
	settings := m.user.Settings

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
		defer cancel()

		if err := client.UpdateSettings(ctx, settings); err != nil {
			log.Debug().Err(err).Msg("pushing settings")
			return flashMsg("settings sync failed")
		}
		return flashMsg("settings synced")
	}
}

// handleAuthLost reacts to a rejected session anywhere in the app.
func (m Model) handleAuthLost() (tea.Model, tea.Cmd) {
	m.client.ClearToken()
	m.currentView = ViewLogin
	m.statusMsg = "session expired, sign in again"
	cmd := m.loginView.Start(m.account)
	return m, cmd
}
