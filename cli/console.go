// ABOUTME: Assistant console CLI command
// ABOUTME: Opens the message log db and runs the bubbletea console
package cli

import (
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1Lab-vibe/a1-client/assistant"
	"github.com/1Lab-vibe/a1-client/db"
	"github.com/1Lab-vibe/a1-client/tui"
)

// ConsoleCommand runs the interactive assistant console.
func ConsoleCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("console", flag.ExitOnError)
	dbPath := fs.String("db-path", "", "Message log path (default: XDG data dir)")
	_ = fs.Parse(args)

	if app.Sessions.Get() == nil {
		return fmt.Errorf("not logged in; run 'a1 login' first")
	}

	path := *dbPath
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to resolve message log path: %w", err)
		}
	}
	database, err := db.OpenDatabase(path)
	if err != nil {
		return fmt.Errorf("failed to open message log: %w", err)
	}
	defer func() { _ = database.Close() }()

	console := assistant.NewConsole(app.API, database, app.Log)
	program := tea.NewProgram(tui.NewModel(console), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("console failed: %w", err)
	}
	return nil
}
