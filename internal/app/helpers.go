package app

import (
	"strings"
	"unicode"

	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/state"
)

// realFolders is the g-key cycle order. The starred pseudo-entry is
// excluded; it has its own key.
var realFolders = []model.Folder{
	model.FolderInbox,
	model.FolderSent,
	model.FolderDrafts,
	model.FolderScheduled,
	model.FolderArchive,
	model.FolderSpam,
	model.FolderTrash,
}

// nextFolderView advances to the next folder in display order, or to
// the inbox when the current view is not a folder.
func nextFolderView(current state.View) state.View {
	if current.Kind != state.ViewFolder {
		return state.FolderView(model.FolderInbox)
	}
	for i, f := range realFolders {
		if f == current.Folder {
			return state.FolderView(realFolders[(i+1)%len(realFolders)])
		}
	}
	return state.FolderView(model.FolderInbox)
}

// nextCategoryView advances to the next category, or to the first one
// when the current view is not a category.
func nextCategoryView(current state.View) state.View {
	if current.Kind != state.ViewCategory {
		return state.CategoryView(model.Categories[0])
	}
	for i, c := range model.Categories {
		if c == current.Category {
			return state.CategoryView(model.Categories[(i+1)%len(model.Categories)])
		}
	}
	return state.CategoryView(model.Categories[0])
}

// viewKey is the cache bucket name for a view.
func viewKey(v state.View) string {
	switch v.Kind {
	case state.ViewFolder:
		return "folder:" + string(v.Folder)
	case state.ViewCategory:
		return "category:" + string(v.Category)
	case state.ViewStarred:
		return "starred"
	case state.ViewScheduled:
		return "scheduled"
	default:
		return "unknown"
	}
}

// viewTitle renders a view name for the list header.
func viewTitle(v state.View) string {
	title := v.Title()
	if title == "" {
		return "Mail"
	}
	runes := []rune(title)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// commandArg splits "verb arg" palette commands; ok is false when cmd
// does not start with the verb or the argument is empty.
func commandArg(cmd, verb string) (string, bool) {
	rest, found := strings.CutPrefix(cmd, verb+" ")
	if !found {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	return rest, rest != ""
}

// messageOr returns msg, or fallback when the server sent none.
func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
