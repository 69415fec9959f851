package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nvu/mailterm/internal/model"
)

// Register creates a new account. The server is the validation authority;
// client-side wizard checks are a UX convenience only.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var user model.User
	if err := c.Post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates with email and password. When the account has two
// factor enabled the result carries RequiresTwoFactor and a temporary token
// instead of an established session; the caller must follow up with
// VerifyTwoFactorLogin. On full success the session cookie is captured by
// the client automatically.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.Post(ctx, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyTwoFactorLogin completes a pending two-factor login using the
// temporary token from Login and the user's code.
func (c *Client) VerifyTwoFactorLogin(
	ctx context.Context,
	tempToken string,
	code string,
) (*LoginResult, error) {
	body := map[string]string{"tempToken": tempToken, "code": code}
	var result LoginResult
	if err := c.Post(ctx, "/auth/2fa/verify-login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/auth/logout", nil, nil)
}

// EditProfile updates profile fields and returns the fresh snapshot.
func (c *Client) EditProfile(
	ctx context.Context,
	fields map[string]interface{},
) (*model.User, error) {
	var user model.User
	if err := c.Put(ctx, "/auth/edit-profile", fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	return c.Post(ctx, "/auth/change-password", body, nil)
}

// VerifyPassword confirms the current password before sensitive operations.
func (c *Client) VerifyPassword(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	return c.Post(ctx, "/auth/verify-password", body, nil)
}

// UpdateSettings pushes display settings to the server. Callers treat this
// as fire-and-forget with a short timeout.
func (c *Client) UpdateSettings(ctx context.Context, settings model.Settings) error {
	return c.Put(ctx, "/auth/update-settings", settings, nil)
}

// CheckEmail asks whether an address is available for registration.
func (c *Client) CheckEmail(ctx context.Context, email string) (*CheckResult, error) {
	values := url.Values{}
	values.Set("email", email)
	var result CheckResult
	if err := c.Get(ctx, "/auth/check-email"+queryString(values), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckPremiumCode asks whether a premium redemption code is valid and
// unclaimed.
func (c *Client) CheckPremiumCode(ctx context.Context, code string) (*CheckResult, error) {
	values := url.Values{}
	values.Set("code", code)
	var result CheckResult
	err := c.Get(ctx, "/auth/check-premium-code"+queryString(values), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteAccount permanently removes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	return c.Post(ctx, "/auth/delete-account", body, nil)
}

// TwoFactorStatus reports whether two-factor auth is enabled.
func (c *Client) TwoFactorStatus(ctx context.Context) (bool, error) {
	var resp struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.Get(ctx, "/auth/2fa/status", &resp); err != nil {
		return false, err
	}
	return resp.Enabled, nil
}

// EnableTwoFactor starts 2FA enrollment and returns the shared secret to
// present to the user.
func (c *Client) EnableTwoFactor(ctx context.Context) (string, error) {
	var resp struct {
		Secret string `json:"secret"`
	}
	if err := c.Post(ctx, "/auth/2fa/enable", nil, &resp); err != nil {
		return "", err
	}
	return resp.Secret, nil
}

// VerifyTwoFactor confirms 2FA enrollment with a generated code.
func (c *Client) VerifyTwoFactor(ctx context.Context, code string) error {
	body := map[string]string{"code": code}
	return c.Post(ctx, "/auth/2fa/verify", body, nil)
}

// DisableTwoFactor turns off two-factor auth after a password check.
func (c *Client) DisableTwoFactor(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	return c.Post(ctx, "/auth/2fa/disable", body, nil)
}

// ListUsers returns a page of accounts. Admin only; the server enforces it.
func (c *Client) ListUsers(ctx context.Context, page, limit int) ([]model.User, int, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Users []model.User `json:"users"`
		Total int          `json:"total"`
	}
	if err := c.Get(ctx, "/auth/users"+queryString(values), &resp); err != nil {
		return nil, 0, err
	}
	return resp.Users, resp.Total, nil
}

// UpdateUserRole changes an account's role and returns the updated record.
func (c *Client) UpdateUserRole(
	ctx context.Context,
	id string,
	role model.Role,
) (*model.User, error) {
	body := map[string]string{"role": string(role)}
	var user model.User
	err := c.Put(ctx, "/auth/users/"+url.PathEscape(id)+"/role", body, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserStatus changes an account's status and returns the updated
// record.
func (c *Client) UpdateUserStatus(
	ctx context.Context,
	id string,
	status model.Status,
) (*model.User, error) {
	body := map[string]string{"status": string(status)}
	var user model.User
	err := c.Put(ctx, "/auth/users/"+url.PathEscape(id)+"/status", body, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.Delete(ctx, "/auth/users/"+url.PathEscape(id), nil)
}
