package api

import (
	"time"

	"github.com/nvu/mailterm/internal/model"
)

// ListOptions controls pagination and filtering for mail list queries.
type ListOptions struct {
	Page   int
	Limit  int
	Search string

	// IsRead filters by read state when non-nil.
	IsRead *bool
}

// MailPage is one page of mail records from a list endpoint.
type MailPage struct {
	Mails   []model.Mail `json:"mails"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	HasMore bool         `json:"hasMore"`
}

// Draft is the outbound content of a send, save-draft, schedule, or reply
// call. AttachmentPaths are local files uploaded as multipart parts;
// Existing carries metadata of already-stored attachments (re-sent as
// parallel name/type/url arrays).
type Draft struct {
	To      []model.Address
	Cc      []model.Address
	Bcc     []model.Address
	Subject string
	Body    string
	HTML    string

	AttachmentPaths []string
	Existing        []model.Attachment

	// ScheduledSendAt is set only for schedule calls.
	ScheduledSendAt *time.Time
}

// LoginResult is the outcome of a login or 2FA verification call. When
// RequiresTwoFactor is set the session is not yet established: the caller
// must complete VerifyTwoFactorLogin with the temporary token.
type LoginResult struct {
	RequiresTwoFactor bool        `json:"requiresTwoFactor"`
	TempToken         string      `json:"tempToken,omitempty"`
	User              *model.User `json:"user,omitempty"`
}

// RegisterRequest carries the registration wizard's final payload.
type RegisterRequest struct {
	Name        string     `json:"name"`
	Surname     string     `json:"surname"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	PremiumCode string     `json:"premiumCode,omitempty"`
}

// CheckResult is the server's answer to an availability or validity probe
// (email address, premium code).
type CheckResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// BatchOp identifies a bulk mail operation.
type BatchOp string

const (
	BatchMove   BatchOp = "move"
	BatchRead   BatchOp = "read"
	BatchUnread BatchOp = "unread"
	BatchStar   BatchOp = "star"
	BatchDelete BatchOp = "delete"
	BatchSpam   BatchOp = "spam"
)

// BatchRequest carries the id set and operation for a single batch call.
type BatchRequest struct {
	Op  BatchOp  `json:"op"`
	IDs []string `json:"ids"`

	// Folder is the target for move operations.
	Folder model.Folder `json:"folder,omitempty"`
}

// BatchItemResult is the per-id outcome inside a batch response.
type BatchItemResult struct {
	ID      string      `json:"id"`
	OK      bool        `json:"ok"`
	Message string      `json:"message,omitempty"`
	Mail    *model.Mail `json:"mail,omitempty"`
}

// BatchResult is the full batch response with explicit partial-failure
// structure.
type BatchResult struct {
	Results []BatchItemResult `json:"results"`
}

// Failed returns the results whose operation did not succeed.
func (r *BatchResult) Failed() []BatchItemResult {
	var out []BatchItemResult
	for _, item := range r.Results {
		if !item.OK {
			out = append(out, item)
		}
	}
	return out
}
