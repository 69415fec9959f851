package api

import (
	"context"
	"net/url"

	"github.com/nvu/mailterm/internal/model"
)

// ListPremium returns all premium domains. Admin only.
func (c *Client) ListPremium(ctx context.Context) ([]model.PremiumDomain, error) {
	var resp struct {
		Domains []model.PremiumDomain `json:"domains"`
	}
	if err := c.Get(ctx, "/premium", &resp); err != nil {
		return nil, err
	}
	return resp.Domains, nil
}

// CreatePremium registers a new premium domain. The redemption code is
// generated client-side before the call.
func (c *Client) CreatePremium(
	ctx context.Context,
	domain model.PremiumDomain,
) (*model.PremiumDomain, error) {
	var created model.PremiumDomain
	if err := c.Post(ctx, "/premium", domain, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePremium updates price or duration on an existing premium domain.
func (c *Client) UpdatePremium(
	ctx context.Context,
	domain model.PremiumDomain,
) (*model.PremiumDomain, error) {
	var updated model.PremiumDomain
	err := c.Put(ctx, "/premium/"+url.PathEscape(domain.ID), domain, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePremium removes a premium domain.
func (c *Client) DeletePremium(ctx context.Context, id string) error {
	return c.Delete(ctx, "/premium/"+url.PathEscape(id), nil)
}

// TogglePremium flips the active flag and returns the updated record.
func (c *Client) TogglePremium(
	ctx context.Context,
	id string,
) (*model.PremiumDomain, error) {
	var updated model.PremiumDomain
	err := c.Post(ctx, "/premium/"+url.PathEscape(id)+"/toggle", nil, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
