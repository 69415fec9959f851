package app

import (
	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/state"
	"github.com/nvu/mailterm/internal/ui/compose"
)

// bootDoneMsg is the result of restoring the active session at startup.
type bootDoneMsg struct {
	sess  *model.Session
	token string
	err   error
}

// profileMsg carries a refreshed /auth/me snapshot.
type profileMsg struct {
	user *model.User
	err  error
}

// pageLoadedMsg is the result of a mail list fetch. When the server was
// unreachable, page may still carry the last cached first page and
// fromCache is set.
type pageLoadedMsg struct {
	view      state.View
	page      *api.MailPage
	fromCache bool
	err       error
}

// mailOpenedMsg is the result of a full per-id fetch for the reading
// pane. seq guards the read-flag patch against later mutations.
type mailOpenedMsg struct {
	id   string
	seq  uint64
	mail *model.Mail
	err  error
}

// draftLoadedMsg carries a full draft record fetched for editing.
type draftLoadedMsg struct {
	mail *model.Mail
	err  error
}

// mailMutatedMsg is the confirmation of a single-record mutation.
type mailMutatedMsg struct {
	id   string
	seq  uint64
	mail *model.Mail
	err  error

	// leaveView returns to the list when the mutation was issued from
	// the reading pane and removed the mail from it (move to trash).
	leaveView bool
}

// mailDeletedMsg is the confirmation of a permanent delete.
type mailDeletedMsg struct {
	id  string
	seq uint64
	err error
}

// batchDoneMsg is the confirmation of a batch mutation with per-id
// outcomes.
type batchDoneMsg struct {
	seqs   state.BatchSeq
	op     api.BatchOp
	result *api.BatchResult
	err    error
}

// composeDoneMsg is the result of a send, save-draft, schedule, or
// reply call.
type composeDoneMsg struct {
	action compose.Action
	mail   *model.Mail
	err    error
}

// exportDoneMsg is the result of writing a mail to disk.
type exportDoneMsg struct {
	path string
	err  error
}

// cleanupDoneMsg is the result of a trash purge.
type cleanupDoneMsg struct {
	deleted int
	err     error
}

// loginDoneMsg is the result of a credentials or 2FA login call.
type loginDoneMsg struct {
	email  string
	result *api.LoginResult
	err    error
}

// sessionReadyMsg is sent once a fresh login has been persisted.
type sessionReadyMsg struct {
	sess *model.Session
	err  error
}

// registerDoneMsg reports a failed registration attempt.
type registerDoneMsg struct {
	err error
}

// registerRejectedMsg bounces the wizard back with a server-side
// validation message (email taken, bad premium code).
type registerRejectedMsg struct {
	reason string
}

// sessionsLoadedMsg carries the locally known account list.
type sessionsLoadedMsg struct {
	sessions []model.Session
	active   string
}

// accountSwitchedMsg is the result of activating another locally known
// account. user is the cached profile snapshot; the live profile is
// refreshed afterwards.
type accountSwitchedMsg struct {
	email     string
	user      *model.User
	token     string
	needLogin bool
	err       error
}

// signedOutMsg is the result of forgetting an account. next is the
// promoted session when the active account was removed, nil when no
// account remains.
type signedOutMsg struct {
	email     string
	wasActive bool
	next      *model.Session
	token     string
	err       error
}

// adminDoneMsg is the shared confirmation for admin user and premium
// mutations.
type adminDoneMsg struct {
	err           error
	note          string
	reloadUsers   bool
	reloadPremium bool
}

// authLostMsg drops the app to the login screen after a 401/403.
type authLostMsg struct{}

// flashMsg replaces the status bar text until the next keypress.
type flashMsg string
