package salon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"salonctl/internal/models"
	"salonctl/internal/shared"
)

// Credentials carries an email/password pair for login and registration.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session at the auth endpoint.
func (c *Client) Login(ctx context.Context, creds Credentials) (*models.Session, error) {
	var resp authResponse
	if err := c.post(ctx, "/auth/login", creds, &resp, shared.ErrAuth); err != nil {
		return nil, err
	}
	return &models.Session{Token: resp.Token, Email: resp.Email, Role: resp.Role}, nil
}

// Register creates a client account and returns the issued session.
func (c *Client) Register(ctx context.Context, creds Credentials) (*models.Session, error) {
	var resp authResponse
	if err := c.post(ctx, "/auth/signup/client", creds, &resp, shared.ErrAuth); err != nil {
		return nil, err
	}
	return &models.Session{Token: resp.Token, Email: resp.Email, Role: resp.Role}, nil
}

// Logout asks the backend to invalidate the current token.
//
// Callers treat this as best effort; local state is cleared regardless of the
// outcome here.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil, shared.ErrAuth)
}

// ForgotPassword requests a password-reset email for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email", shared.ErrMissingArgument)
	}
	endpoint := fmt.Sprintf("/auth/forgot-password?email=%s", url.QueryEscape(email))
	return c.post(ctx, endpoint, nil, nil, shared.ErrAuth)
}

// ResetPassword sets a new password using a reset token from the email link.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.post(ctx, "/auth/reset-password", body, nil, shared.ErrAuth)
}

// ChangePassword sets a new password on a token-scoped change endpoint.
//
// The confirmation match check is done locally; the backend only sees the new
// password.
func (c *Client) ChangePassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: les mots de passe ne correspondent pas", shared.ErrValidation)
	}

	endpoint := fmt.Sprintf("/auth/change-password?token=%s", url.QueryEscape(token))
	body := map[string]string{"newPassword": newPassword}
	return c.post(ctx, endpoint, body, nil, shared.ErrAuth)
}

// Me retrieves the authenticated client's profile.
func (c *Client) Me(ctx context.Context) (*ClientProfile, error) {
	var profile ClientProfile
	if err := c.get(ctx, "/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateClient replaces the authenticated client's profile.
func (c *Client) UpdateClient(ctx context.Context, profile ClientProfile) error {
	return c.doRequest(ctx, http.MethodPut, c.baseURL+"/client/update", profile, nil, shared.ErrSubmit)
}
