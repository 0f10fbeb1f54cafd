// ABOUTME: Assistant console actions: incoming-message poll, free-form send, deferred reply
// ABOUTME: The send body is free-form (no action field); getCOOResponse polls by request_id
package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/1Lab-vibe/a1-client/models"
	"github.com/1Lab-vibe/a1-client/normalize"
)

// FetchIncomingMessages polls assistant-originated messages newer than
// afterID. Empty afterID means "from the beginning".
func (c *Client) FetchIncomingMessages(ctx context.Context, afterID string) ([]models.IncomingMessage, error) {
	var payload any
	if afterID != "" {
		payload = map[string]string{"after_id": afterID}
	}
	raw, err := c.wh.Do(ctx, "getCOOIncomingMessages", payload)
	if err != nil {
		return nil, err
	}
	var messages []models.IncomingMessage
	decodeRecords(normalize.RecordsJSON(raw, "messages"), &messages)
	return messages, nil
}

// AssistantReply is a finished assistant turn.
type AssistantReply struct {
	Text        string
	Attachments []models.Attachment
}

// assistantResponse covers every field name the automation flows have
// been seen using for the reply text and attachments.
type assistantResponse struct {
	Status      string              `json:"status"`
	RequestID   string              `json:"request_id"`
	Text        *string             `json:"text"`
	Message     *string             `json:"message"`
	Output      *string             `json:"output"`
	Attachments []models.Attachment `json:"attachments"`
	Files       []models.Attachment `json:"files"`
}

func (r *assistantResponse) reply() *AssistantReply {
	text := ""
	switch {
	case r.Text != nil:
		text = *r.Text
	case r.Message != nil:
		text = *r.Message
	case r.Output != nil:
		text = *r.Output
	}
	attachments := r.Attachments
	if attachments == nil {
		attachments = r.Files
	}
	return &AssistantReply{Text: text, Attachments: attachments}
}

func (r *assistantResponse) hasText() bool {
	return r.Text != nil || r.Message != nil || r.Output != nil
}

// NoReplyText is returned when a deferred reply never arrives within the
// attempt budget.
const NoReplyText = "No response received. Please try again later."

// SendAssistantMessage sends a free-form console message. Two backend
// modes: an immediate reply, or {status: "processing", request_id} after
// which the same webhook is polled with getCOOResponse until ready
// (attempts × interval, ~90s) before giving up with NoReplyText.
func (c *Client) SendAssistantMessage(ctx context.Context, message string, pollInterval time.Duration, pollAttempts int) (*AssistantReply, error) {
	body := map[string]any{
		"message":   message,
		"timestamp": time.Now().UnixMilli(),
	}
	raw, err := c.wh.DoBody(ctx, "", body)
	if err != nil {
		return nil, err
	}

	var res assistantResponse
	_ = json.Unmarshal(raw, &res)

	if res.hasText() {
		return res.reply(), nil
	}

	if res.Status == models.StatusProcessing && res.RequestID != "" {
		for i := 0; i < pollAttempts; i++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(pollInterval):
			}
			next, err := c.fetchAssistantResponse(ctx, res.RequestID)
			if err != nil {
				// Transient poll failures are retried until the budget runs out.
				c.log.Debug().Err(err).Str("request_id", res.RequestID).Msg("reply poll failed")
				continue
			}
			if next != nil {
				return next, nil
			}
		}
		return &AssistantReply{Text: NoReplyText}, nil
	}

	return res.reply(), nil
}

// fetchAssistantResponse asks for a deferred reply. Nil without error
// means "not ready yet".
func (c *Client) fetchAssistantResponse(ctx context.Context, requestID string) (*AssistantReply, error) {
	body := map[string]any{
		"action":     "getCOOResponse",
		"request_id": requestID,
	}
	raw, err := c.wh.DoBody(ctx, "getCOOResponse", body)
	if err != nil {
		return nil, err
	}
	var res assistantResponse
	_ = json.Unmarshal(raw, &res)
	if res.Status != models.StatusReady {
		return nil, nil
	}
	return res.reply(), nil
}
