// ABOUTME: Typed wrappers over the generic webhook transport, one per backend action
// ABOUTME: Auth actions here; CRM, chat and assistant actions in sibling files
package api

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/1Lab-vibe/a1-client/models"
	"github.com/1Lab-vibe/a1-client/webhook"
)

// Client exposes every backend action as a typed call.
type Client struct {
	wh  *webhook.Client
	log zerolog.Logger
}

// New wraps a webhook transport.
func New(wh *webhook.Client, logger zerolog.Logger) *Client {
	return &Client{wh: wh, log: logger.With().Str("component", "api").Logger()}
}

// LoginResult is the backend's answer to a login attempt. Token and
// CompanyID may be absent even on success; callers fall back to "ok"/"".
type LoginResult struct {
	Access    bool   `json:"access"`
	Token     string `json:"token,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
}

// Login authenticates. This is a public action: no session fields are sent.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	raw, err := c.wh.Do(ctx, "login", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	var res LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return &LoginResult{}, nil
	}
	return &res, nil
}

// ReportFailedLogin notifies the backend about a failed attempt.
// Fire-and-forget; the caller ignores the result.
func (c *Client) ReportFailedLogin(ctx context.Context, email string) {
	if _, err := c.wh.Do(ctx, "reportFailedLogin", map[string]string{"email": email}); err != nil {
		c.log.Debug().Err(err).Msg("reportFailedLogin failed")
	}
}

// DemoResult is the normalized requestDemo outcome.
type DemoResult struct {
	Access  string // "access" or "deny"
	Message string
}

// RequestDemo submits the demo-access form. The backend answers under
// either "access" or "result"; anything unrecognized is a deny.
func (c *Client) RequestDemo(ctx context.Context, req models.DemoRequest) (*DemoResult, error) {
	raw, err := c.wh.Do(ctx, "requestDemo", req)
	if err != nil {
		return nil, err
	}
	var res struct {
		Access  string `json:"access"`
		Result  string `json:"result"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &res)
	access := res.Access
	if access == "" {
		access = res.Result
	}
	if access == "" {
		access = "deny"
	}
	return &DemoResult{Access: access, Message: res.Message}, nil
}
