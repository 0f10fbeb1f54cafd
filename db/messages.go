// ABOUTME: Assistant message log persistence
// ABOUTME: Upsert by id, list ordered by timestamp; attachments stored as JSON text
package db

import (
	"database/sql"
	"encoding/json"

	"github.com/1Lab-vibe/a1-client/models"
)

// SaveMessages upserts messages by id. Re-saving the same batch is a no-op.
func SaveMessages(db *sql.DB, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO messages (id, role, content, attachments, timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			role = excluded.role,
			content = excluded.content,
			attachments = excluded.attachments,
			timestamp = excluded.timestamp
	`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, msg := range messages {
		var attachments *string
		if len(msg.Attachments) > 0 {
			b, err := json.Marshal(msg.Attachments)
			if err != nil {
				return err
			}
			s := string(b)
			attachments = &s
		}
		if _, err := stmt.Exec(msg.ID, msg.Role, msg.Content, attachments, msg.Timestamp); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListMessages returns the full log ordered by timestamp ascending.
func ListMessages(db *sql.DB) ([]models.Message, error) {
	rows, err := db.Query(`
		SELECT id, role, content, attachments, timestamp
		FROM messages
		ORDER BY timestamp ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		var attachments sql.NullString
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &attachments, &msg.Timestamp); err != nil {
			return nil, err
		}
		if attachments.Valid && attachments.String != "" {
			_ = json.Unmarshal([]byte(attachments.String), &msg.Attachments)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// ClearMessages wipes the log.
func ClearMessages(db *sql.DB) error {
	_, err := db.Exec(`DELETE FROM messages`)
	return err
}
