// ABOUTME: Data models for CRM records and assistant messages
// ABOUTME: Records are open maps; the backend owns the schema, we require only id/stageId
package models

import "encoding/json"

// Record is a backend-owned CRM row. Only a handful of keys are
// guaranteed per type (every record has "id", kanban records also have
// "stageId"); everything else must be carried through untouched.
type Record map[string]any

// Client, Lead, Deal and Invoice all share the open-map shape.
type (
	Client  = Record
	Lead    = Record
	Deal    = Record
	Invoice = Record
)

// ID returns the record id coerced to string ("" when absent).
func (r Record) ID() string {
	return stringField(r, "id")
}

// StageID returns the kanban stage id coerced to string.
func (r Record) StageID() string {
	return stringField(r, "stageId")
}

// Title returns the display title, falling back to name, then id.
func (r Record) Title() string {
	if t := stringField(r, "title"); t != "" {
		return t
	}
	if n := stringField(r, "name"); n != "" {
		return n
	}
	return r.ID()
}

// WithStage returns a copy of the record moved to the given stage.
func (r Record) WithStage(stageID string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	out["stageId"] = stageID
	return out
}

func stringField(r Record, key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// Stage is one step of a kanban pipeline.
type Stage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// Task mirrors the backend task row (fields as emitted by the automation
// flows: task_type, domain, status, step_index, created_at, params).
type Task struct {
	ID        string         `json:"id"`
	TaskType  string         `json:"task_type"`
	Domain    string         `json:"domain"`
	Status    string         `json:"status"`
	StepIndex any            `json:"step_index"` // number or string, backend is inconsistent
	CreatedAt string         `json:"created_at"`
	Params    map[string]any `json:"params,omitempty"`
}

// Attachment is a file/image/chart reference on a message.
type Attachment struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// Message roles in the assistant log.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the assistant console transcript.
type Message struct {
	ID          string       `json:"id"`
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Timestamp   int64        `json:"timestamp"` // unix milliseconds
}

// StatusProcessing marks a not-yet-finalized assistant turn. Entries with
// this status are never persisted or shown; the typing indicator covers them.
const (
	StatusProcessing = "processing"
	StatusReady      = "ready"
)

// IncomingMessage is an assistant-originated message pushed through the
// backend. ID is a monotonic bigint sequence, wire-encoded as a string to
// avoid float precision loss.
type IncomingMessage struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Timestamp   int64        `json:"timestamp"`
	Status      string       `json:"status,omitempty"`
}

// ChatChannel is a team chat channel.
type ChatChannel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsGeneral bool   `json:"isGeneral,omitempty"`
}

// ChatUser is a direct-message peer.
type ChatUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// ChatMessage is one team chat message (channel or DM).
type ChatMessage struct {
	ID          string       `json:"id"`
	ChatID      string       `json:"chatId"`
	ChatType    string       `json:"chatType"` // "channel" or "user"
	SenderID    string       `json:"senderId"`
	SenderName  string       `json:"senderName"`
	Text        string       `json:"text"`
	Timestamp   int64        `json:"timestamp"`
	IsOwn       bool         `json:"isOwn,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// DemoRequest is the unauthenticated demo-access form.
type DemoRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Source string `json:"source"` // how they heard about us
	Region string `json:"region"`
}
