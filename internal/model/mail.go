package model

import "time"

// Folder is the exclusive placement of a mail. A mail is in exactly one
// folder at any time.
type Folder string

const (
	FolderInbox     Folder = "inbox"
	FolderSent      Folder = "sent"
	FolderDrafts    Folder = "drafts"
	FolderSpam      Folder = "spam"
	FolderTrash     Folder = "trash"
	FolderArchive   Folder = "archive"
	FolderScheduled Folder = "scheduled"
)

// Folders lists every folder in sidebar display order.
var Folders = []Folder{
	FolderInbox,
	FolderStarredView, // pseudo-entry, see below
	FolderSent,
	FolderDrafts,
	FolderScheduled,
	FolderArchive,
	FolderSpam,
	FolderTrash,
}

// FolderStarredView is not a real folder on the server; it is the sidebar
// entry for the starred view. Kept out of IsValidFolder.
const FolderStarredView Folder = "starred"

// IsValidFolder reports whether f is a real server-side folder.
func IsValidFolder(f Folder) bool {
	switch f {
	case FolderInbox, FolderSent, FolderDrafts, FolderSpam,
		FolderTrash, FolderArchive, FolderScheduled:
		return true
	}
	return false
}

// Category is a non-exclusive tag-like grouping independent of folder.
// A mail may belong to zero or more categories.
type Category string

const (
	CategorySocial     Category = "social"
	CategoryUpdates    Category = "updates"
	CategoryForums     Category = "forums"
	CategoryShopping   Category = "shopping"
	CategoryPromotions Category = "promotions"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategorySocial,
	CategoryUpdates,
	CategoryForums,
	CategoryShopping,
	CategoryPromotions,
}

// IsValidCategory reports whether c is a known category.
func IsValidCategory(c Category) bool {
	switch c {
	case CategorySocial, CategoryUpdates, CategoryForums,
		CategoryShopping, CategoryPromotions:
		return true
	}
	return false
}

// Address is a display name plus email address pair.
type Address struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// String renders the address as "Name <email>" or just the email.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}

// Attachment describes a stored attachment on a mail. Content lives on the
// server's file storage; only metadata travels with the mail record.
type Attachment struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// Mail is the normalized mail record as served by the remote API.
type Mail struct {
	// ID is the server-assigned mail identifier.
	ID string `json:"id"`

	// From is the sender.
	From Address `json:"from"`

	// To, Cc, and Bcc are the recipient lists.
	To  []Address `json:"to"`
	Cc  []Address `json:"cc,omitempty"`
	Bcc []Address `json:"bcc,omitempty"`

	Subject string `json:"subject"`

	// Body is the plain-text content; HTMLBody is the optional HTML variant.
	Body     string `json:"body"`
	HTMLBody string `json:"htmlBody,omitempty"`

	Attachments []Attachment `json:"attachments,omitempty"`

	// Labels are arbitrary user strings, independent of folder and category.
	Labels []string `json:"labels,omitempty"`

	// Categories is the soft category membership set.
	Categories []Category `json:"categories,omitempty"`

	// Folder is the exclusive placement.
	Folder Folder `json:"folder"`

	IsRead      bool `json:"isRead"`
	IsStarred   bool `json:"isStarred"`
	IsImportant bool `json:"isImportant"`

	ReceivedAt time.Time `json:"receivedAt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// ScheduledSendAt is set only while the mail sits in the scheduled folder.
	ScheduledSendAt *time.Time `json:"scheduledSendAt,omitempty"`

	// SnoozedUntil is set while the mail is snoozed out of the inbox.
	SnoozedUntil *time.Time `json:"snoozedUntil,omitempty"`

	// UserID is the owning account.
	UserID string `json:"userId"`
}

// HasCategory reports whether the mail carries category c.
func (m *Mail) HasCategory(c Category) bool {
	for _, mc := range m.Categories {
		if mc == c {
			return true
		}
	}
	return false
}

// HasLabel reports whether the mail carries label l.
func (m *Mail) HasLabel(l string) bool {
	for _, ml := range m.Labels {
		if ml == l {
			return true
		}
	}
	return false
}
