package state

import "github.com/nvu/mailterm/internal/model"

// Outcome reports what a state-apply did, so the caller can decide whether
// counts need refreshing or the list rendering must change.
type Outcome struct {
	// Applied is false when the confirmation was discarded as stale.
	Applied bool

	// Evicted is true when the record left the visible list.
	Evicted bool
}

// Mailbox is the client-side mail state: the single in-memory list backing
// whatever view is currently active, the selected mail for the detail pane,
// and the count stats. Local state is patched only from confirmed server
// responses; the patch rules are an optimization over canonical server
// state and must match the server's membership rules per view kind.
//
// Mailbox is not safe for concurrent use. All mutation happens on the
// Bubble Tea update loop, which serializes message handling.
type Mailbox struct {
	view     View
	mails    []model.Mail
	selected *model.Mail
	stats    *model.Stats

	page    int
	total   int
	hasMore bool

	// issued and applied implement the per-record sequence guard: every
	// outbound mutation takes a sequence from NextSeq, and a confirmation
	// is discarded when a higher sequence has already been applied for the
	// same record. Without this, whichever response arrived last would win
	// even if it confirmed an older mutation.
	issued  map[string]uint64
	applied map[string]uint64
}

// NewMailbox creates an empty mailbox showing the inbox view.
func NewMailbox() *Mailbox {
	return &Mailbox{
		view:    FolderView(model.FolderInbox),
		issued:  make(map[string]uint64),
		applied: make(map[string]uint64),
	}
}

// View returns the active view.
func (mb *Mailbox) View() View {
	return mb.view
}

// Mails returns the current list. Callers must not mutate it.
func (mb *Mailbox) Mails() []model.Mail {
	return mb.mails
}

// Len returns the number of mails in the current list.
func (mb *Mailbox) Len() int {
	return len(mb.mails)
}

// Page returns pagination info for the current list.
func (mb *Mailbox) Page() (page, total int, hasMore bool) {
	return mb.page, mb.total, mb.hasMore
}

// Get returns the listed mail with the given id, or nil.
func (mb *Mailbox) Get(id string) *model.Mail {
	if i := mb.index(id); i >= 0 {
		return &mb.mails[i]
	}
	return nil
}

// Selected returns the detail-view mail, or nil when none is selected.
func (mb *Mailbox) Selected() *model.Mail {
	return mb.selected
}

// Select sets the detail-view mail. The record comes from a full per-id
// fetch, not from the list row.
func (mb *Mailbox) Select(mail *model.Mail) {
	mb.selected = mail
}

// ClearSelection nulls out the detail-view mail.
func (mb *Mailbox) ClearSelection() {
	mb.selected = nil
}

// Stats returns the folder/category count overview, possibly nil before the
// first stats fetch.
func (mb *Mailbox) Stats() *model.Stats {
	return mb.stats
}

// SetStats replaces the count overview.
func (mb *Mailbox) SetStats(stats *model.Stats) {
	mb.stats = stats
}

// NextSeq issues the next mutation sequence number for a record. Call once
// per outbound mutation, before the request is sent.
func (mb *Mailbox) NextSeq(id string) uint64 {
	mb.issued[id]++
	return mb.issued[id]
}

// stale reports whether a confirmation with the given sequence has been
// superseded by an already-applied higher sequence for the same record.
func (mb *Mailbox) stale(id string, seq uint64) bool {
	return seq <= mb.applied[id]
}

func (mb *Mailbox) markApplied(id string, seq uint64) {
	if seq > mb.applied[id] {
		mb.applied[id] = seq
	}
}

// SetPage replaces the entire list with a server page result and records
// the now-active view. Entering any folder, category, starred, or scheduled
// view goes through here.
func (mb *Mailbox) SetPage(view View, mails []model.Mail, total, page int, hasMore bool) {
	mb.view = view
	mb.mails = mails
	mb.total = total
	mb.page = page
	mb.hasMore = hasMore
}

// ApplyUpdate patches local state from a confirmed mutation on one record.
// The updated record is patched in place wherever it sits (list row and
// selected mail), then the active view's membership predicate is evaluated:
// if the record no longer belongs, it is evicted. A record not currently
// listed is never inserted; only a fresh page fetch adds rows.
func (mb *Mailbox) ApplyUpdate(seq uint64, updated model.Mail) Outcome {
	if mb.stale(updated.ID, seq) {
		return Outcome{}
	}
	mb.markApplied(updated.ID, seq)

	if mb.selected != nil && mb.selected.ID == updated.ID {
		sel := updated
		mb.selected = &sel
	}

	idx := mb.index(updated.ID)
	if idx < 0 {
		return Outcome{Applied: true}
	}

	if mb.view.Contains(&updated) {
		mb.mails[idx] = updated
		return Outcome{Applied: true}
	}

	mb.remove(idx)
	return Outcome{Applied: true, Evicted: true}
}

// ApplyDelete removes a permanently deleted record: always evicted from the
// list, and the selection is cleared if it pointed at the record, no matter
// which view is active.
func (mb *Mailbox) ApplyDelete(seq uint64, id string) Outcome {
	if mb.stale(id, seq) {
		return Outcome{}
	}
	mb.markApplied(id, seq)

	if mb.selected != nil && mb.selected.ID == id {
		mb.selected = nil
	}

	idx := mb.index(id)
	if idx < 0 {
		return Outcome{Applied: true}
	}
	mb.remove(idx)
	return Outcome{Applied: true, Evicted: true}
}

// BatchSeq pairs a mail id with its issued sequence number for a batch
// mutation.
type BatchSeq map[string]uint64

// IssueBatch issues one sequence number per id for a batch operation.
func (mb *Mailbox) IssueBatch(ids []string) BatchSeq {
	seqs := make(BatchSeq, len(ids))
	for _, id := range ids {
		seqs[id] = mb.NextSeq(id)
	}
	return seqs
}

// BatchItem is one per-id outcome from a confirmed batch operation.
type BatchItem struct {
	ID string

	// OK is false when the server reported a failure for this id; the
	// record is left untouched.
	OK bool

	// Mail is the updated record for non-delete operations; nil means the
	// record was deleted.
	Mail *model.Mail
}

// ApplyBatch applies per-id batch outcomes with the same rules as single
// mutations. Failed ids are skipped, so a partial failure leaves exactly
// the succeeded records patched.
func (mb *Mailbox) ApplyBatch(seqs BatchSeq, items []BatchItem) (applied, evicted int) {
	for _, item := range items {
		if !item.OK {
			continue
		}
		var out Outcome
		if item.Mail == nil {
			out = mb.ApplyDelete(seqs[item.ID], item.ID)
		} else {
			out = mb.ApplyUpdate(seqs[item.ID], *item.Mail)
		}
		if out.Applied {
			applied++
		}
		if out.Evicted {
			evicted++
		}
	}
	return applied, evicted
}

func (mb *Mailbox) index(id string) int {
	for i := range mb.mails {
		if mb.mails[i].ID == id {
			return i
		}
	}
	return -1
}

func (mb *Mailbox) remove(idx int) {
	mb.mails = append(mb.mails[:idx], mb.mails[idx+1:]...)
	if mb.total > 0 {
		mb.total--
	}
}
