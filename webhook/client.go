// ABOUTME: Generic webhook transport: one endpoint, routed by the action field
// ABOUTME: Session fields ride on every call except the public actions; HMAC when a secret is set
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/1Lab-vibe/a1-client/config"
	"github.com/1Lab-vibe/a1-client/session"
)

// Actions sent before a session exists. Everything else carries
// company_id/token/user_id; the backend rejects calls without them.
var publicActions = map[string]bool{
	"login":             true,
	"requestDemo":       true,
	"reportFailedLogin": true,
}

// TransportError is a connection or server failure (non-2xx, network).
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook: %v", e.Err)
	}
	return fmt.Sprintf("webhook: status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client posts envelopes to the single webhook endpoint.
type Client struct {
	url      string
	secret   string
	sessions *session.Store
	http     *http.Client
	log      zerolog.Logger
}

// NewClient builds a transport over the configured endpoint.
func NewClient(cfg *config.Config, sessions *session.Store, logger zerolog.Logger) *Client {
	return &Client{
		url:      cfg.WebhookURL,
		secret:   cfg.Secret,
		sessions: sessions,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      logger.With().Str("component", "webhook").Logger(),
	}
}

// Do sends one action with an optional payload. At most one attempt;
// repetition policy belongs to the caller.
func (c *Client) Do(ctx context.Context, action string, payload any) (json.RawMessage, error) {
	body := map[string]any{"action": action}
	if payload != nil {
		body["payload"] = payload
	}
	return c.DoBody(ctx, action, body)
}

// DoBody sends a pre-built envelope body. The assistant console uses this
// for its free-form message shape and the getCOOResponse poll, which put
// fields at the top level instead of under payload.
func (c *Client) DoBody(ctx context.Context, action string, body map[string]any) (json.RawMessage, error) {
	if sess := c.sessions.Get(); sess != nil && !publicActions[action] {
		body["company_id"] = sess.CompanyID
		body["token"] = sess.Token
		body["user_id"] = sess.UserID
	}

	var (
		wire   []byte
		signed *SignedPayload
		err    error
	)
	if c.secret != "" {
		signed, err = SignPayload(c.secret, body)
		if err != nil {
			return nil, err
		}
		wire, err = json.Marshal(signed)
	} else {
		wire, err = json.Marshal(body)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(wire))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if signed != nil {
		req.Header.Set(HeaderTimestamp, strconv.FormatInt(signed.Timestamp, 10))
		req.Header.Set(HeaderNonce, signed.Nonce)
		req.Header.Set(HeaderSignature, signed.Signature)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("action", action).Err(err).Msg("request failed")
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Str("action", action).Int("status", resp.StatusCode).Msg("server error")
		return nil, &TransportError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	// A malformed body is an empty result, not an error. Read paths must
	// stay usable against a half-broken automation flow.
	if !json.Valid(raw) {
		return json.RawMessage(`{}`), nil
	}

	return c.unwrap(action, json.RawMessage(raw), resp.Header), nil
}

// unwrap verifies a signed response envelope when signing is configured.
// On verification failure it falls back to the unverified parse with a
// warning, so a secret configured on only one side degrades reads instead
// of breaking them.
func (c *Client) unwrap(action string, raw json.RawMessage, headers http.Header) json.RawMessage {
	if c.secret == "" {
		return raw
	}
	var outer struct {
		BodyB64 string `json:"body_b64"`
	}
	if err := json.Unmarshal(raw, &outer); err != nil || outer.BodyB64 == "" {
		return raw
	}
	inner, err := VerifySignedResponse(
		c.secret,
		outer.BodyB64,
		headers.Get(HeaderTimestamp),
		headers.Get(HeaderNonce),
		headers.Get(HeaderSignature),
	)
	if err != nil {
		c.log.Warn().Str("action", action).Err(err).Msg("response signature did not verify, using unverified body")
		return raw
	}
	return inner
}
