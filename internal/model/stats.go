package model

// FolderCount holds unread/total counts for one folder or category.
type FolderCount struct {
	Unread int `json:"unread"`
	Total  int `json:"total"`
}

// Stats is the per-folder and per-category count overview served by
// /mail/stats/overview. It is refreshed after any action that could
// change membership.
type Stats struct {
	Folders    map[Folder]FolderCount   `json:"folders"`
	Categories map[Category]FolderCount `json:"categories"`
	Starred    FolderCount              `json:"starred"`
}

// FolderUnread returns the unread count for a folder, zero when unknown.
func (s *Stats) FolderUnread(f Folder) int {
	if s == nil || s.Folders == nil {
		return 0
	}
	return s.Folders[f].Unread
}

// CategoryUnread returns the unread count for a category, zero when unknown.
func (s *Stats) CategoryUnread(c Category) int {
	if s == nil || s.Categories == nil {
		return 0
	}
	return s.Categories[c].Unread
}
