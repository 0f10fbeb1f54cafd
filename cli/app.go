// ABOUTME: Shared wiring for CLI commands
// ABOUTME: Bundles config, session store, webhook transport and typed API
package cli

import (
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/1Lab-vibe/a1-client/api"
	"github.com/1Lab-vibe/a1-client/config"
	"github.com/1Lab-vibe/a1-client/session"
	"github.com/1Lab-vibe/a1-client/webhook"
)

// App carries everything a command needs.
type App struct {
	Config   *config.Config
	Sessions *session.Store
	API      *api.Client
	Log      zerolog.Logger
}

// NewApp wires the client stack: config → session (restored from disk) →
// transport → typed API.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	sessions := session.NewStore()
	session.Restore(sessions)
	wh := webhook.NewClient(cfg, sessions, logger)
	return &App{
		Config:   cfg,
		Sessions: sessions,
		API:      api.New(wh, logger),
		Log:      logger,
	}
}

// OpenDB is a small indirection so commands that do not need the message
// log never touch the database file.
type OpenDB func() (*sql.DB, error)
