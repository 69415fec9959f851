package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/nvu/mailterm/internal/model"
)

// listQuery builds the shared query parameters for list endpoints.
func listQuery(opts ListOptions) url.Values {
	values := url.Values{}
	if opts.Page > 0 {
		values.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		values.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Search != "" {
		values.Set("search", opts.Search)
	}
	if opts.IsRead != nil {
		values.Set("isRead", strconv.FormatBool(*opts.IsRead))
	}
	return values
}

// ListFolder fetches one page of mails from a folder.
func (c *Client) ListFolder(
	ctx context.Context,
	folder model.Folder,
	opts ListOptions,
) (*MailPage, error) {
	values := listQuery(opts)
	values.Set("folder", string(folder))

	var page MailPage
	if err := c.Get(ctx, "/mail/inbox"+queryString(values), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListCategory fetches one page of mails belonging to a label-category.
func (c *Client) ListCategory(
	ctx context.Context,
	category model.Category,
	opts ListOptions,
) (*MailPage, error) {
	var page MailPage
	path := "/mail/category/" + url.PathEscape(string(category)) +
		queryString(listQuery(opts))
	if err := c.Get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListStarred fetches one page of starred mails across all folders.
func (c *Client) ListStarred(ctx context.Context, opts ListOptions) (*MailPage, error) {
	var page MailPage
	if err := c.Get(ctx, "/mail/starred"+queryString(listQuery(opts)), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListScheduled fetches one page of scheduled mails.
func (c *Client) ListScheduled(ctx context.Context, opts ListOptions) (*MailPage, error) {
	var page MailPage
	if err := c.Get(ctx, "/mail/scheduled"+queryString(listQuery(opts)), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Stats fetches the per-folder and per-category count overview.
func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	if err := c.Get(ctx, "/mail/stats/overview", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetMail fetches a single mail by id with full content.
func (c *Client) GetMail(ctx context.Context, id string) (*model.Mail, error) {
	var mail model.Mail
	if err := c.Get(ctx, "/mail/"+url.PathEscape(id), &mail); err != nil {
		return nil, err
	}
	return &mail, nil
}

// SendMail submits a composed mail for immediate delivery.
func (c *Client) SendMail(ctx context.Context, draft Draft) (*model.Mail, error) {
	return c.postDraft(ctx, "/mail/send", draft)
}

// SaveDraft stores a composed mail in the drafts folder.
func (c *Client) SaveDraft(ctx context.Context, draft Draft) (*model.Mail, error) {
	return c.postDraft(ctx, "/mail/draft", draft)
}

// ScheduleMail stores a composed mail for delivery at draft.ScheduledSendAt.
func (c *Client) ScheduleMail(ctx context.Context, draft Draft) (*model.Mail, error) {
	if draft.ScheduledSendAt == nil {
		return nil, fmt.Errorf("schedule: missing send time")
	}
	return c.postDraft(ctx, "/mail/schedule", draft)
}

// ReplyMail sends a reply to an existing mail.
func (c *Client) ReplyMail(
	ctx context.Context,
	id string,
	draft Draft,
) (*model.Mail, error) {
	return c.postDraft(ctx, "/mail/"+url.PathEscape(id)+"/reply", draft)
}

// MoveMail moves a mail to another folder and returns the updated record.
func (c *Client) MoveMail(
	ctx context.Context,
	id string,
	folder model.Folder,
) (*model.Mail, error) {
	body := map[string]string{"folder": string(folder)}
	var mail model.Mail
	err := c.Post(ctx, "/mail/"+url.PathEscape(id)+"/move", body, &mail)
	if err != nil {
		return nil, err
	}
	return &mail, nil
}

// SetCategory adds or removes a category on a mail and returns the updated
// record.
func (c *Client) SetCategory(
	ctx context.Context,
	id string,
	category model.Category,
	remove bool,
) (*model.Mail, error) {
	body := map[string]interface{}{
		"category": string(category),
		"remove":   remove,
	}
	var mail model.Mail
	err := c.Post(ctx, "/mail/"+url.PathEscape(id)+"/category", body, &mail)
	if err != nil {
		return nil, err
	}
	return &mail, nil
}

// ToggleStar flips the starred flag and returns the updated record.
func (c *Client) ToggleStar(ctx context.Context, id string) (*model.Mail, error) {
	var mail model.Mail
	err := c.Post(ctx, "/mail/"+url.PathEscape(id)+"/starred", nil, &mail)
	if err != nil {
		return nil, err
	}
	return &mail, nil
}

// ToggleImportant flips the important flag and returns the updated record.
func (c *Client) ToggleImportant(ctx context.Context, id string) (*model.Mail, error) {
	var mail model.Mail
	err := c.Post(ctx, "/mail/"+url.PathEscape(id)+"/important", nil, &mail)
	if err != nil {
		return nil, err
	}
	return &mail, nil
}

// SetRead sets the read flag to the given value and returns the updated
// record.
func (c *Client) SetRead(ctx context.Context, id string, read bool) (*model.Mail, error) {
	body := map[string]bool{"isRead": read}
	var mail model.Mail
	err := c.Post(ctx, "/mail/"+url.PathEscape(id)+"/read", body, &mail)
	if err != nil {
		return nil, err
	}
	return &mail, nil
}

// SetLabels replaces the label set on a mail and returns the updated record.
func (c *Client) SetLabels(
	ctx context.Context,
	id string,
	labels []string,
) (*model.Mail, error) {
	body := map[string][]string{"labels": labels}
	var mail model.Mail
	err := c.Post(ctx, "/mail/"+url.PathEscape(id)+"/labels", body, &mail)
	if err != nil {
		return nil, err
	}
	return &mail, nil
}

// SnoozeMail hides a mail from the inbox until the given time.
func (c *Client) SnoozeMail(
	ctx context.Context,
	id string,
	until time.Time,
) (*model.Mail, error) {
	body := map[string]time.Time{"until": until}
	var mail model.Mail
	err := c.Post(ctx, "/mail/"+url.PathEscape(id)+"/snooze", body, &mail)
	if err != nil {
		return nil, err
	}
	return &mail, nil
}

// CancelSchedule cancels a scheduled send; the mail returns to drafts.
func (c *Client) CancelSchedule(ctx context.Context, id string) (*model.Mail, error) {
	var mail model.Mail
	err := c.Post(ctx, "/mail/"+url.PathEscape(id)+"/cancel-schedule", nil, &mail)
	if err != nil {
		return nil, err
	}
	return &mail, nil
}

// DeleteMail permanently deletes a mail. Only meaningful for mails already
// in trash; the server rejects it otherwise.
func (c *Client) DeleteMail(ctx context.Context, id string) error {
	return c.Delete(ctx, "/mail/"+url.PathEscape(id), nil)
}

// CleanupTrash purges trash mails older than the given number of days and
// returns how many were removed.
func (c *Client) CleanupTrash(ctx context.Context, olderThanDays int) (int, error) {
	body := map[string]int{"olderThanDays": olderThanDays}
	var resp struct {
		Deleted int `json:"deleted"`
	}
	if err := c.Post(ctx, "/mail/cleanup-trash", body, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// Batch applies one operation to a set of mail ids in a single request.
// The response reports per-id outcomes so partial failure is explicit.
func (c *Client) Batch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	var result BatchResult
	if err := c.Post(ctx, "/mail/batch", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
