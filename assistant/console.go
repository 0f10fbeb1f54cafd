// ABOUTME: Assistant console session: polling loop, message log, send path
// ABOUTME: One log/cursor pair behind a mutex; poll tick and send both funnel through it
package assistant

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/1Lab-vibe/a1-client/api"
	"github.com/1Lab-vibe/a1-client/config"
	"github.com/1Lab-vibe/a1-client/db"
	"github.com/1Lab-vibe/a1-client/models"
)

// SendErrorText is appended as a synthetic assistant message when a send
// fails. The user's own message is never retracted.
const SendErrorText = "Connection error. Check your settings and webhook."

// Console is one assistant session: the persisted transcript, the
// incoming-message cursor and the send path.
type Console struct {
	api      *api.Client
	database *sql.DB // nil disables persistence
	log      zerolog.Logger
	interval time.Duration

	// Notify fires after a poll appended at least one new message
	// (the incoming sound hook). Never fired for an empty merge.
	Notify func(added []models.Message)

	mu       sync.Mutex
	messages []models.Message
	cursor   string
}

// NewConsole builds a console session, restoring the transcript from the
// database when one is given.
func NewConsole(client *api.Client, database *sql.DB, logger zerolog.Logger) *Console {
	c := &Console{
		api:      client,
		database: database,
		log:      logger.With().Str("component", "assistant").Logger(),
		interval: config.IncomingPollInterval,
	}
	if database != nil {
		stored, err := db.ListMessages(database)
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to load message log")
		} else {
			c.messages = stored
		}
	}
	return c
}

// Messages returns a copy of the current transcript.
func (c *Console) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Cursor returns the current incoming-message cursor ("" before the
// first non-empty poll).
func (c *Console) Cursor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Run polls for incoming messages until ctx is cancelled: once
// immediately, then on a fixed interval. Poll failures are swallowed and
// the next tick retries; resilience over efficiency.
func (c *Console) Run(ctx context.Context) {
	c.Poll(ctx)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Poll(ctx)
		}
	}
}

// Poll performs one tick: fetch messages after the cursor, drop
// in-progress entries, advance the cursor, merge and persist. Returns the
// newly appended messages.
func (c *Console) Poll(ctx context.Context) []models.Message {
	incoming, err := c.api.FetchIncomingMessages(ctx, c.Cursor())
	if err != nil {
		c.log.Debug().Err(err).Msg("incoming poll failed")
		return nil
	}
	if ctx.Err() != nil || len(incoming) == 0 {
		return nil
	}

	// Entries still marked processing are a not-yet-final assistant turn:
	// not merged, not persisted, and they do not feed the cursor.
	final := incoming[:0:0]
	for _, msg := range incoming {
		if msg.Status == models.StatusProcessing {
			continue
		}
		final = append(final, msg)
	}

	batch := make([]models.Message, 0, len(final))
	for _, msg := range final {
		batch = append(batch, models.Message{
			ID:          msg.ID,
			Role:        models.RoleAssistant,
			Content:     msg.Text,
			Attachments: msg.Attachments,
			Timestamp:   msg.Timestamp,
		})
	}

	c.mu.Lock()
	c.cursor = NextCursor(c.cursor, final)
	merged, added := Merge(c.messages, batch)
	c.messages = merged
	c.mu.Unlock()

	if len(added) == 0 {
		return nil
	}
	c.persist(added)
	if c.Notify != nil {
		c.Notify(added)
	}
	return added
}

// Send posts a user message. The user entry is appended optimistically
// before the network call and stays in the transcript even when the send
// fails; failure appends a synthetic assistant error entry instead.
// Returns the assistant's entry.
func (c *Console) Send(ctx context.Context, text string) models.Message {
	user := models.Message{
		ID:        syntheticID("user"),
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now().UnixMilli(),
	}
	c.append(user)

	reply, err := c.api.SendAssistantMessage(ctx, text, config.ReplyPollInterval, config.ReplyPollAttempts)
	if err != nil {
		c.log.Debug().Err(err).Msg("assistant send failed")
		errMsg := models.Message{
			ID:        syntheticID("err"),
			Role:      models.RoleAssistant,
			Content:   SendErrorText,
			Timestamp: time.Now().UnixMilli(),
		}
		c.append(errMsg)
		return errMsg
	}

	assistant := models.Message{
		ID:          syntheticID("assistant"),
		Role:        models.RoleAssistant,
		Content:     reply.Text,
		Attachments: reply.Attachments,
		Timestamp:   time.Now().UnixMilli(),
	}
	c.append(assistant)
	return assistant
}

func (c *Console) append(msg models.Message) {
	c.mu.Lock()
	merged, added := Merge(c.messages, []models.Message{msg})
	c.messages = merged
	c.mu.Unlock()
	c.persist(added)
}

func (c *Console) persist(added []models.Message) {
	if c.database == nil || len(added) == 0 {
		return
	}
	if err := db.SaveMessages(c.database, added); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist messages")
	}
}

func syntheticID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, ulid.Make())
}
