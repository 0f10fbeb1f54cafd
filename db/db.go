// ABOUTME: Database connection management and initialization
// ABOUTME: Opens the message log SQLite db in WAL mode at the XDG data path
package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/1Lab-vibe/a1-client/config"
)

const dbFileName = "messages.db"

// DefaultPath returns the message log location under the app data dir.
func DefaultPath() (string, error) {
	return config.DataPath(dbFileName)
}

// OpenDatabase opens (and initializes) the message log database.
func OpenDatabase(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Single connection avoids SQLITE_BUSY between the poller and the send path.
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
