package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/eml"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/state"
	appsync "github.com/nvu/mailterm/internal/sync"
	"github.com/nvu/mailterm/internal/ui/compose"
	"github.com/nvu/mailterm/internal/ui/mailview"
)

// requestTimeout bounds a single API call issued from the update loop.
const requestTimeout = 30 * time.Second

// snoozeDuration is how long a snoozed mail stays out of the inbox.
const snoozeDuration = 24 * time.Hour

// loadPage fetches one page of the given view. On network failure the
// last cached first page is served instead, so the list stays usable
// offline.
func (m Model) loadPage(view state.View, page int) tea.Cmd {
	client := m.client
	st := m.store
	account := m.account
	opts := api.ListOptions{
		Page:   page,
		Limit:  m.cfg.Mail.PageSize,
		Search: m.searchQuery,
	}
	if m.unreadOnly {
		unread := false
		opts.IsRead = &unread
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			result *api.MailPage
			err    error
		)
		switch view.Kind {
		case state.ViewFolder:
			result, err = client.ListFolder(ctx, view.Folder, opts)
		case state.ViewCategory:
			result, err = client.ListCategory(ctx, view.Category, opts)
		case state.ViewStarred:
			result, err = client.ListStarred(ctx, opts)
		case state.ViewScheduled:
			result, err = client.ListScheduled(ctx, opts)
		}

		cacheable := page == 1 && opts.Search == "" && opts.IsRead == nil && account != ""

		if err == nil {
			if cacheable {
				if cacheErr := st.ReplaceCachedMails(ctx, account, viewKey(view), result.Mails); cacheErr != nil {
					log.Debug().Err(cacheErr).Msg("caching mail page")
				}
			}
			return pageLoadedMsg{view: view, page: result}
		}

		if api.IsAuthError(err) {
			return authLostMsg{}
		}

		if cacheable {
			cached, cacheErr := st.GetCachedMails(ctx, account, viewKey(view))
			if cacheErr == nil && len(cached) > 0 {
				return pageLoadedMsg{
					view:      view,
					page:      &api.MailPage{Mails: cached, Total: len(cached), Page: 1},
					fromCache: true,
					err:       err,
				}
			}
		}
		return pageLoadedMsg{view: view, err: err}
	}
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.page == nil {
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
		}
		return m, nil
	}

	m.mailbox.SetPage(msg.view, msg.page.Mails, msg.page.Total, msg.page.Page, msg.page.HasMore)
	m.mailList.SetTitle(viewTitle(msg.view))
	m.syncList()
	m.sidebarView.SetActive(msg.view)
	m.currentView = ViewList

	if msg.fromCache {
		m.statusMsg = "offline: showing cached mail"
	}
	return m, nil
}

// handleMailSelected opens a mail from the list. Drafts open in the
// compose form; everything else opens in the reading pane.
func (m Model) handleMailSelected(id string) (tea.Model, tea.Cmd) {
	rec := m.mailbox.Get(id)
	if rec != nil && rec.Folder == model.FolderDrafts {
		return m, m.loadDraft(id)
	}

	m.previousView = m.currentView
	m.currentView = ViewMail
	m.mailView.SetLoading(true)
	return m, m.openMail(id)
}

// openMail fetches the full record and marks it read on open.
func (m Model) openMail(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	seq := m.mailbox.NextSeq(id)
	client := m.client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		mail, err := client.GetMail(ctx, id)
		if err != nil {
			return mailOpenedMsg{id: id, err: err}
		}

		if !mail.IsRead {
			updated, readErr := client.SetRead(ctx, id, true)
			if readErr != nil {
				log.Debug().Err(readErr).Str("mail", id).Msg("marking mail read")
			} else {
				mail = updated
			}
		}
		return mailOpenedMsg{id: id, seq: seq, mail: mail}
	}
}

func (m Model) handleMailOpened(msg mailOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.handleAuthLost()
		}
		m.currentView = ViewList
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	m.mailbox.Select(msg.mail)
	m.mailbox.ApplyUpdate(msg.seq, *msg.mail)
	m.syncList()
	m.mailView.SetLoading(false)
	m.mailView.SetMail(m.mailbox.Selected())
	m.refresher.Trigger()
	return m, nil
}

// loadDraft fetches a draft's full content for editing.
func (m Model) loadDraft(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		mail, err := client.GetMail(ctx, id)
		return draftLoadedMsg{mail: mail, err: err}
	}
}

func (m Model) handleDraftLoaded(msg draftLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.handleAuthLost()
		}
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	m.previousView = m.currentView
	m.currentView = ViewCompose
	cmd := m.composeView.StartDraft(msg.mail)
	return m, cmd
}

// handleMailAction executes a reading-pane action on the open mail.
func (m Model) handleMailAction(msg mailview.ActionMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case "reply":
		if sel := m.mailbox.Selected(); sel != nil {
			m.previousView = m.currentView
			m.currentView = ViewCompose
			cmd := m.composeView.StartReply(sel)
			return m, cmd
		}
		return m, nil

	case "star":
		return m, m.toggleStar(msg.MailID)

	case "important":
		return m, m.toggleImportant(msg.MailID)

	case "unread":
		return m, m.toggleRead(msg.MailID)

	case "trash":
		return m, m.trashMail(msg.MailID)

	case "snooze":
		return m, m.snoozeMail(msg.MailID)

	case "export":
		return m, m.exportMail(m.mailbox.Selected())
	}
	return m, nil
}

// mutateMail wraps a single-record mutation: the sequence is issued
// before the request goes out, and the confirmation carries it back so
// stale responses can be discarded.
func (m Model) mutateMail(id string, leaveView bool, call func(context.Context) (*model.Mail, error)) tea.Cmd {
	if id == "" {
		return nil
	}
	seq := m.mailbox.NextSeq(id)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		mail, err := call(ctx)
		return mailMutatedMsg{id: id, seq: seq, mail: mail, err: err, leaveView: leaveView}
	}
}

func (m Model) toggleStar(id string) tea.Cmd {
	client := m.client
	return m.mutateMail(id, false, func(ctx context.Context) (*model.Mail, error) {
		return client.ToggleStar(ctx, id)
	})
}

func (m Model) toggleImportant(id string) tea.Cmd {
	client := m.client
	return m.mutateMail(id, false, func(ctx context.Context) (*model.Mail, error) {
		return client.ToggleImportant(ctx, id)
	})
}

func (m Model) toggleRead(id string) tea.Cmd {
	rec := m.currentMail(id)
	if rec == nil {
		return nil
	}
	read := !rec.IsRead
	client := m.client
	return m.mutateMail(id, false, func(ctx context.Context) (*model.Mail, error) {
		return client.SetRead(ctx, id, read)
	})
}

func (m Model) snoozeMail(id string) tea.Cmd {
	until := time.Now().Add(snoozeDuration)
	client := m.client
	return m.mutateMail(id, false, func(ctx context.Context) (*model.Mail, error) {
		return client.SnoozeMail(ctx, id, until)
	})
}

func (m Model) cancelSchedule(id string) tea.Cmd {
	client := m.client
	return m.mutateMail(id, false, func(ctx context.Context) (*model.Mail, error) {
		return client.CancelSchedule(ctx, id)
	})
}

// toggleCategory adds or removes a category on the focused mail.
func (m Model) toggleCategory(id string, cat model.Category) tea.Cmd {
	if !model.IsValidCategory(cat) {
		return func() tea.Msg { return flashMsg("unknown category: " + string(cat)) }
	}
	rec := m.currentMail(id)
	if rec == nil {
		return nil
	}
	remove := rec.HasCategory(cat)
	client := m.client
	return m.mutateMail(id, false, func(ctx context.Context) (*model.Mail, error) {
		return client.SetCategory(ctx, id, cat, remove)
	})
}

// toggleLabel adds or removes a free-form label on the focused mail.
func (m Model) toggleLabel(id, label string) tea.Cmd {
	rec := m.currentMail(id)
	if rec == nil || label == "" {
		return nil
	}

	labels := make([]string, 0, len(rec.Labels)+1)
	found := false
	for _, l := range rec.Labels {
		if l == label {
			found = true
			continue
		}
		labels = append(labels, l)
	}
	if !found {
		labels = append(labels, label)
	}

	client := m.client
	return m.mutateMail(id, false, func(ctx context.Context) (*model.Mail, error) {
		return client.SetLabels(ctx, id, labels)
	})
}

// trashMail moves a mail to trash, or deletes it permanently when it is
// already there.
func (m Model) trashMail(id string) tea.Cmd {
	rec := m.currentMail(id)
	if rec == nil {
		return nil
	}
	client := m.client

	if rec.Folder == model.FolderTrash {
		seq := m.mailbox.NextSeq(id)
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			err := client.DeleteMail(ctx, id)
			return mailDeletedMsg{id: id, seq: seq, err: err}
		}
	}

	return m.mutateMail(id, true, func(ctx context.Context) (*model.Mail, error) {
		return client.MoveMail(ctx, id, model.FolderTrash)
	})
}

func (m Model) handleMailMutated(msg mailMutatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.handleAuthLost()
		}
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	out := m.mailbox.ApplyUpdate(msg.seq, *msg.mail)
	if !out.Applied {
		log.Debug().Str("mail", msg.id).Uint64("seq", msg.seq).
			Msg("discarded stale mutation confirmation")
		return m, nil
	}

	m.syncList()
	if m.currentView == ViewMail {
		if msg.leaveView {
			m.currentView = ViewList
			m.mailbox.ClearSelection()
		} else if sel := m.mailbox.Selected(); sel != nil {
			m.mailView.SetMail(sel)
		}
	}
	m.refresher.Trigger()
	return m, nil
}

func (m Model) handleMailDeleted(msg mailDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.handleAuthLost()
		}
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	m.mailbox.ApplyDelete(msg.seq, msg.id)
	m.syncList()
	if m.currentView == ViewMail && m.mailbox.Selected() == nil {
		m.currentView = ViewList
	}
	m.statusMsg = "mail deleted"
	m.refresher.Trigger()
	return m, nil
}

// batch issues one sequence per id and sends a single request covering
// all of them.
func (m Model) batch(op api.BatchOp, folder model.Folder, ids []string) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	seqs := m.mailbox.IssueBatch(ids)
	client := m.client
	req := api.BatchRequest{Op: op, IDs: ids, Folder: folder}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.Batch(ctx, req)
		return batchDoneMsg{seqs: seqs, op: op, result: result, err: err}
	}
}

func (m Model) batchMove(folder model.Folder) tea.Cmd {
	return m.batch(api.BatchMove, folder, m.mailList.MarkedIDs())
}

// batchSpam flags the marked mails as spam; inside the spam folder the
// same key rescues them back to the inbox.
func (m Model) batchSpam() tea.Cmd {
	view := m.mailbox.View()
	if view.Kind == state.ViewFolder && view.Folder == model.FolderSpam {
		return m.batch(api.BatchMove, model.FolderInbox, m.mailList.MarkedIDs())
	}
	return m.batch(api.BatchSpam, "", m.mailList.MarkedIDs())
}

// batchTrash moves the marked mails to trash; inside the trash folder
// it deletes them permanently.
func (m Model) batchTrash() tea.Cmd {
	view := m.mailbox.View()
	if view.Kind == state.ViewFolder && view.Folder == model.FolderTrash {
		return m.batch(api.BatchDelete, "", m.mailList.MarkedIDs())
	}
	return m.batch(api.BatchMove, model.FolderTrash, m.mailList.MarkedIDs())
}

// batchToggleRead marks the set read when any of it is unread, and
// unread only when everything is already read.
func (m Model) batchToggleRead() tea.Cmd {
	ids := m.mailList.MarkedIDs()
	op := api.BatchUnread
	for _, id := range ids {
		if rec := m.mailbox.Get(id); rec != nil && !rec.IsRead {
			op = api.BatchRead
			break
		}
	}
	return m.batch(op, "", ids)
}

func (m Model) handleBatchDone(msg batchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.handleAuthLost()
		}
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	items := make([]state.BatchItem, 0, len(msg.result.Results))
	for _, r := range msg.result.Results {
		items = append(items, state.BatchItem{ID: r.ID, OK: r.OK, Mail: r.Mail})
	}
	applied, _ := m.mailbox.ApplyBatch(msg.seqs, items)

	m.mailList.ClearMarks()
	m.syncList()

	if failed := msg.result.Failed(); len(failed) > 0 {
		m.statusMsg = fmt.Sprintf("%d of %d failed: %s",
			len(failed), len(msg.result.Results), failed[0].Message)
	} else {
		m.statusMsg = fmt.Sprintf("%d mails updated", applied)
	}
	m.refresher.Trigger()
	return m, nil
}

// submitCompose routes the finished compose form to the right endpoint.
func (m Model) submitCompose(msg compose.SubmitMsg) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		// Attachment uploads can outlast the ordinary request budget.
		ctx, cancel := context.WithTimeout(context.Background(), 2*requestTimeout)
		defer cancel()

		var (
			mail *model.Mail
			err  error
		)
		switch {
		case msg.ReplyTo != "":
			mail, err = client.ReplyMail(ctx, msg.ReplyTo, msg.Draft)
		case msg.Action == compose.ActionDraft:
			mail, err = client.SaveDraft(ctx, msg.Draft)
		case msg.Action == compose.ActionSchedule:
			mail, err = client.ScheduleMail(ctx, msg.Draft)
		default:
			mail, err = client.SendMail(ctx, msg.Draft)
		}
		return composeDoneMsg{action: msg.Action, mail: mail, err: err}
	}
}

func (m Model) handleComposeDone(msg composeDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.handleAuthLost()
		}
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	switch msg.action {
	case compose.ActionDraft:
		m.statusMsg = "draft saved"
	case compose.ActionSchedule:
		m.statusMsg = "send scheduled"
	default:
		m.statusMsg = "mail sent"
	}
	m.refresher.Trigger()

	// Reload when the active view now includes the new record.
	view := m.mailbox.View()
	if msg.mail != nil && view.Contains(msg.mail) {
		return m, m.loadPage(view, 1)
	}
	return m, nil
}

// exportMail writes the mail to the user's home directory in .eml form.
func (m Model) exportMail(mail *model.Mail) tea.Cmd {
	if mail == nil {
		return nil
	}
	rec := *mail
	return func() tea.Msg {
		dir, err := os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		path, err := eml.ExportFile(&rec, dir)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) cleanupTrash(olderThanDays int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		deleted, err := client.CleanupTrash(ctx, olderThanDays)
		return cleanupDoneMsg{deleted: deleted, err: err}
	}
}

func (m Model) handleCleanupDone(msg cleanupDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.handleAuthLost()
		}
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	m.statusMsg = fmt.Sprintf("purged %d mails from trash", msg.deleted)
	m.refresher.Trigger()

	view := m.mailbox.View()
	if view.Kind == state.ViewFolder && view.Folder == model.FolderTrash {
		return m, m.loadPage(view, 1)
	}
	return m, nil
}

func (m Model) handleStatsResult(msg appsync.StatsResultMsg) (tea.Model, tea.Cmd) {
	resub := m.refresher.WaitForNextResult()

	if msg.Auth != nil {
		mdl, cmd := m.handleAuthLost()
		return mdl, tea.Batch(cmd, resub)
	}
	if msg.Err != nil {
		log.Debug().Err(msg.Err).Msg("stats refresh failed")
		return m, resub
	}

	m.mailbox.SetStats(msg.Stats)
	m.sidebarView.SetStats(*msg.Stats)
	return m, resub
}

// currentMail resolves an id against the list, falling back to the
// selected mail so reading-pane actions work after eviction.
func (m Model) currentMail(id string) *model.Mail {
	if rec := m.mailbox.Get(id); rec != nil {
		return rec
	}
	if sel := m.mailbox.Selected(); sel != nil && sel.ID == id {
		return sel
	}
	return nil
}

// syncList pushes the mailbox list into the list view.
func (m *Model) syncList() {
	page, total, hasMore := m.mailbox.Page()
	m.mailList.SetMails(m.mailbox.Mails(), page, total, hasMore)
}
