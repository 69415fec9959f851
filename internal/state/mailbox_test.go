package state

import (
	"testing"

	"github.com/nvu/mailterm/internal/model"
)

func inboxMail(id string) model.Mail {
	return model.Mail{ID: id, Folder: model.FolderInbox}
}

func loadInbox(mb *Mailbox, mails ...model.Mail) {
	mb.SetPage(FolderView(model.FolderInbox), mails, len(mails), 1, false)
}

func TestStarThenMoveFromInbox(t *testing.T) {
	// Star keeps the mail in the inbox view; a move away evicts it.
	mb := NewMailbox()
	loadInbox(mb, inboxMail("m1"))

	starred := inboxMail("m1")
	starred.IsStarred = true
	out := mb.ApplyUpdate(mb.NextSeq("m1"), starred)
	if !out.Applied || out.Evicted {
		t.Fatalf("star apply = %+v, want applied without eviction", out)
	}
	if got := mb.Get("m1"); got == nil || !got.IsStarred {
		t.Fatalf("m1 should still be listed with isStarred=true")
	}

	moved := starred
	moved.Folder = model.FolderArchive
	out = mb.ApplyUpdate(mb.NextSeq("m1"), moved)
	if !out.Evicted {
		t.Fatalf("move away from active folder should evict, got %+v", out)
	}
	if mb.Get("m1") != nil {
		t.Fatalf("m1 should be gone from the inbox list")
	}
}

func TestMoveUnderStarredViewDoesNotEvict(t *testing.T) {
	mb := NewMailbox()
	m := inboxMail("m1")
	m.IsStarred = true
	mb.SetPage(StarredView(), []model.Mail{m}, 1, 1, false)

	moved := m
	moved.Folder = model.FolderTrash
	out := mb.ApplyUpdate(mb.NextSeq("m1"), moved)
	if out.Evicted {
		t.Fatalf("folder change must not evict from the starred view")
	}
	got := mb.Get("m1")
	if got == nil {
		t.Fatalf("m1 should still be listed")
	}
	if got.Folder != model.FolderTrash {
		t.Fatalf("folder = %q, want trash", got.Folder)
	}
}

func TestStarToggleRoundTrip(t *testing.T) {
	// Double-toggle restores the flag; under the starred view the
	// unstar evicts, and restarring never reinserts.
	mb := NewMailbox()
	m := inboxMail("m1")
	m.IsStarred = true
	mb.SetPage(StarredView(), []model.Mail{m}, 1, 1, false)

	unstarred := m
	unstarred.IsStarred = false
	out := mb.ApplyUpdate(mb.NextSeq("m1"), unstarred)
	if !out.Evicted {
		t.Fatalf("unstar under starred view should evict")
	}

	restarred := unstarred
	restarred.IsStarred = true
	out = mb.ApplyUpdate(mb.NextSeq("m1"), restarred)
	if !out.Applied {
		t.Fatalf("restar should still apply")
	}
	if mb.Get("m1") != nil {
		t.Fatalf("restar must not retroactively insert into the list")
	}
	if !restarred.IsStarred {
		t.Fatalf("double toggle should restore the original value")
	}
}

func TestCategoryRemovalEvictsOnlyUnderThatCategory(t *testing.T) {
	mb := NewMailbox()
	m := inboxMail("m1")
	m.Categories = []model.Category{model.CategorySocial}
	mb.SetPage(CategoryView(model.CategorySocial), []model.Mail{m}, 1, 1, false)

	dropped := m
	dropped.Categories = nil
	out := mb.ApplyUpdate(mb.NextSeq("m1"), dropped)
	if !out.Evicted {
		t.Fatalf("losing the active category should evict")
	}

	// Same removal under a folder view only patches in place.
	mb2 := NewMailbox()
	loadInbox(mb2, m)
	out = mb2.ApplyUpdate(mb2.NextSeq("m1"), dropped)
	if out.Evicted {
		t.Fatalf("category change must not evict from a folder view")
	}
	if got := mb2.Get("m1"); got == nil || len(got.Categories) != 0 {
		t.Fatalf("categories should be patched in place")
	}
}

func TestReadToggleNeverEvicts(t *testing.T) {
	mb := NewMailbox()
	loadInbox(mb, inboxMail("m1"))

	read := inboxMail("m1")
	read.IsRead = true
	if out := mb.ApplyUpdate(mb.NextSeq("m1"), read); out.Evicted {
		t.Fatalf("read toggle must never evict")
	}

	labeled := read
	labeled.Labels = []string{"work"}
	if out := mb.ApplyUpdate(mb.NextSeq("m1"), labeled); out.Evicted {
		t.Fatalf("label change must never evict from a folder view")
	}
	got := mb.Get("m1")
	if got == nil || !got.IsRead || !got.HasLabel("work") {
		t.Fatalf("flags and labels should be patched in place, got %+v", got)
	}
}

func TestDeleteAlwaysEvictsAndClearsSelection(t *testing.T) {
	for _, view := range []View{
		FolderView(model.FolderTrash),
		StarredView(),
		CategoryView(model.CategoryUpdates),
	} {
		mb := NewMailbox()
		m := model.Mail{
			ID:         "x",
			Folder:     model.FolderTrash,
			IsStarred:  true,
			Categories: []model.Category{model.CategoryUpdates},
		}
		mb.SetPage(view, []model.Mail{m}, 1, 1, false)
		sel := m
		mb.Select(&sel)

		out := mb.ApplyDelete(mb.NextSeq("x"), "x")
		if !out.Evicted {
			t.Fatalf("view %v: delete should always evict", view)
		}
		if mb.Get("x") != nil {
			t.Fatalf("view %v: x should be absent after delete", view)
		}
		if mb.Selected() != nil {
			t.Fatalf("view %v: selection should be cleared after delete", view)
		}
	}
}

func TestDeleteOfUnselectedKeepsSelection(t *testing.T) {
	mb := NewMailbox()
	loadInbox(mb, inboxMail("m1"), inboxMail("m2"))
	sel := inboxMail("m2")
	mb.Select(&sel)

	mb.ApplyDelete(mb.NextSeq("m1"), "m1")
	if mb.Selected() == nil || mb.Selected().ID != "m2" {
		t.Fatalf("deleting m1 must not clear the m2 selection")
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	// A star confirmation that raced with a later move must not clobber
	// the move when it arrives last.
	mb := NewMailbox()
	loadInbox(mb, inboxMail("m1"))

	starSeq := mb.NextSeq("m1")
	moveSeq := mb.NextSeq("m1")

	moved := inboxMail("m1")
	moved.Folder = model.FolderArchive
	if out := mb.ApplyUpdate(moveSeq, moved); !out.Evicted {
		t.Fatalf("move should evict from inbox")
	}

	stale := inboxMail("m1")
	stale.IsStarred = true
	out := mb.ApplyUpdate(starSeq, stale)
	if out.Applied {
		t.Fatalf("stale star confirmation should be discarded")
	}
	if mb.Get("m1") != nil {
		t.Fatalf("stale response must not resurrect the evicted record")
	}
}

func TestStaleDeleteDiscarded(t *testing.T) {
	mb := NewMailbox()
	loadInbox(mb, inboxMail("m1"))

	delSeq := mb.NextSeq("m1")
	readSeq := mb.NextSeq("m1")

	read := inboxMail("m1")
	read.IsRead = true
	mb.ApplyUpdate(readSeq, read)

	if out := mb.ApplyDelete(delSeq, "m1"); out.Applied {
		t.Fatalf("superseded delete confirmation should be discarded")
	}
	if mb.Get("m1") == nil {
		t.Fatalf("m1 should survive the stale delete")
	}
}

func TestApplyUpdatePatchesSelection(t *testing.T) {
	mb := NewMailbox()
	loadInbox(mb, inboxMail("m1"))
	sel := inboxMail("m1")
	mb.Select(&sel)

	read := inboxMail("m1")
	read.IsRead = true
	mb.ApplyUpdate(mb.NextSeq("m1"), read)

	if got := mb.Selected(); got == nil || !got.IsRead {
		t.Fatalf("selected mail should be patched alongside the list row")
	}
}

func TestApplyBatchPartialFailure(t *testing.T) {
	// Batch of three moves where the second id fails: exactly the
	// succeeded records are patched, the failed one is untouched.
	mb := NewMailbox()
	loadInbox(mb, inboxMail("a"), inboxMail("b"), inboxMail("c"))

	seqs := mb.IssueBatch([]string{"a", "b", "c"})

	movedA := inboxMail("a")
	movedA.Folder = model.FolderArchive
	movedC := inboxMail("c")
	movedC.Folder = model.FolderArchive

	applied, evicted := mb.ApplyBatch(seqs, []BatchItem{
		{ID: "a", OK: true, Mail: &movedA},
		{ID: "b", OK: false},
		{ID: "c", OK: true, Mail: &movedC},
	})

	if applied != 2 || evicted != 2 {
		t.Fatalf("applied=%d evicted=%d, want 2 and 2", applied, evicted)
	}
	if mb.Get("a") != nil || mb.Get("c") != nil {
		t.Fatalf("moved mails should be evicted from the inbox")
	}
	if got := mb.Get("b"); got == nil || got.Folder != model.FolderInbox {
		t.Fatalf("failed id must be left untouched")
	}
}

func TestApplyBatchDelete(t *testing.T) {
	mb := NewMailbox()
	mb.SetPage(FolderView(model.FolderTrash), []model.Mail{
		{ID: "a", Folder: model.FolderTrash},
		{ID: "b", Folder: model.FolderTrash},
	}, 2, 1, false)

	seqs := mb.IssueBatch([]string{"a", "b"})
	applied, evicted := mb.ApplyBatch(seqs, []BatchItem{
		{ID: "a", OK: true},
		{ID: "b", OK: true},
	})
	if applied != 2 || evicted != 2 {
		t.Fatalf("applied=%d evicted=%d, want 2 and 2", applied, evicted)
	}
	if mb.Len() != 0 {
		t.Fatalf("trash list should be empty after batch delete")
	}
}

func TestSetPageReplacesList(t *testing.T) {
	mb := NewMailbox()
	loadInbox(mb, inboxMail("m1"), inboxMail("m2"))

	sent := model.Mail{ID: "s1", Folder: model.FolderSent}
	mb.SetPage(FolderView(model.FolderSent), []model.Mail{sent}, 12, 2, true)

	if mb.Len() != 1 || mb.Get("s1") == nil {
		t.Fatalf("entering a view should replace the whole list")
	}
	if !mb.View().Equal(FolderView(model.FolderSent)) {
		t.Fatalf("active view should track the entered view")
	}
	page, total, hasMore := mb.Page()
	if page != 2 || total != 12 || !hasMore {
		t.Fatalf("pagination = (%d,%d,%v), want (2,12,true)", page, total, hasMore)
	}
}

func TestUpdateForUnlistedMailDoesNotInsert(t *testing.T) {
	mb := NewMailbox()
	loadInbox(mb, inboxMail("m1"))

	other := inboxMail("m9")
	other.IsRead = true
	out := mb.ApplyUpdate(mb.NextSeq("m9"), other)
	if !out.Applied || out.Evicted {
		t.Fatalf("unlisted update should apply without list change, got %+v", out)
	}
	if mb.Len() != 1 {
		t.Fatalf("patching an unlisted record must not grow the list")
	}
}
