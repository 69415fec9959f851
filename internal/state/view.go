package state

import "github.com/nvu/mailterm/internal/model"

// ViewKind identifies which kind of list the user is looking at. The view
// modes are mutually exclusive: one folder, one category, starred, or
// scheduled.
type ViewKind int

const (
	ViewFolder ViewKind = iota
	ViewCategory
	ViewStarred
	ViewScheduled
)

// View is the active list mode. Folder is set for ViewFolder, Category for
// ViewCategory; both are zero otherwise.
type View struct {
	Kind     ViewKind
	Folder   model.Folder
	Category model.Category
}

// FolderView returns the view for a single folder.
func FolderView(f model.Folder) View {
	return View{Kind: ViewFolder, Folder: f}
}

// CategoryView returns the view for a single label-category.
func CategoryView(c model.Category) View {
	return View{Kind: ViewCategory, Category: c}
}

// StarredView returns the starred view.
func StarredView() View {
	return View{Kind: ViewStarred}
}

// ScheduledView returns the scheduled view.
func ScheduledView() View {
	return View{Kind: ViewScheduled}
}

// membership maps each view kind to the predicate that decides whether a
// mail belongs in that view. List patching evaluates this table uniformly
// after every confirmed mutation: a record whose predicate no longer holds
// is evicted, and nothing else about the mutation type matters.
//
// Note the starred predicate ignores folder entirely: starring is an
// orthogonal flag, so folder moves never evict from the starred view.
var membership = map[ViewKind]func(View, *model.Mail) bool{
	ViewFolder: func(v View, m *model.Mail) bool {
		return m.Folder == v.Folder
	},
	ViewCategory: func(v View, m *model.Mail) bool {
		return m.HasCategory(v.Category)
	},
	ViewStarred: func(_ View, m *model.Mail) bool {
		return m.IsStarred
	},
	ViewScheduled: func(_ View, m *model.Mail) bool {
		return m.Folder == model.FolderScheduled
	},
}

// Contains reports whether the mail satisfies this view's membership
// predicate.
func (v View) Contains(m *model.Mail) bool {
	pred, ok := membership[v.Kind]
	if !ok {
		return false
	}
	return pred(v, m)
}

// Title returns the sidebar label for the view.
func (v View) Title() string {
	switch v.Kind {
	case ViewFolder:
		return string(v.Folder)
	case ViewCategory:
		return string(v.Category)
	case ViewStarred:
		return "starred"
	case ViewScheduled:
		return "scheduled"
	default:
		return ""
	}
}

// Equal reports whether two views denote the same list mode.
func (v View) Equal(other View) bool {
	return v.Kind == other.Kind &&
		v.Folder == other.Folder &&
		v.Category == other.Category
}
