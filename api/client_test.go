package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1Lab-vibe/a1-client/config"
	"github.com/1Lab-vibe/a1-client/models"
	"github.com/1Lab-vibe/a1-client/session"
	"github.com/1Lab-vibe/a1-client/webhook"
)

// actionServer routes by the envelope's action field and records requests.
type actionServer struct {
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]func(envelope map[string]any) string
	requests []map[string]any
	srv      *httptest.Server
}

func newActionServer(t *testing.T) *actionServer {
	t.Helper()
	s := &actionServer{t: t, handlers: map[string]func(map[string]any) string{}}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var envelope map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		s.mu.Lock()
		s.requests = append(s.requests, envelope)
		action, _ := envelope["action"].(string)
		h, ok := s.handlers[action]
		s.mu.Unlock()
		if ok {
			w.Write([]byte(h(envelope)))
			return
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *actionServer) on(action, body string) {
	s.handlers[action] = func(map[string]any) string { return body }
}

func (s *actionServer) recorded() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any{}, s.requests...)
}

func (s *actionServer) client() *Client {
	cfg := &config.Config{WebhookURL: s.srv.URL}
	sessions := session.NewStore()
	sessions.Set("co", "tok", "u@example.com")
	return New(webhook.NewClient(cfg, sessions, zerolog.Nop()), zerolog.Nop())
}

func TestLogin(t *testing.T) {
	srv := newActionServer(t)
	srv.on("login", `{"access":true,"token":"t-99","company_id":"co-7"}`)

	res, err := srv.client().Login(context.Background(), "u@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, res.Access)
	assert.Equal(t, "t-99", res.Token)
	assert.Equal(t, "co-7", res.CompanyID)
}

func TestLoginDenied(t *testing.T) {
	srv := newActionServer(t)
	srv.on("login", `{"access":false}`)

	res, err := srv.client().Login(context.Background(), "u@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, res.Access)
}

func TestLoginUnparseableBodyIsDenied(t *testing.T) {
	srv := newActionServer(t)
	srv.on("login", `[1,2,3]`)

	res, err := srv.client().Login(context.Background(), "u@example.com", "pw")
	require.NoError(t, err)
	assert.False(t, res.Access)
	assert.Empty(t, res.Token)
}

func TestRequestDemoAccessKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"access key", `{"access":"access"}`, "access"},
		{"result key", `{"result":"access"}`, "access"},
		{"deny", `{"access":"deny"}`, "deny"},
		{"empty body defaults to deny", `{}`, "deny"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newActionServer(t)
			srv.on("requestDemo", tt.body)

			res, err := srv.client().RequestDemo(context.Background(), models.DemoRequest{
				Name:  "Ada",
				Email: "ada@example.com",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Access)
		})
	}
}

func TestFetchClientsNormalizesShapes(t *testing.T) {
	srv := newActionServer(t)
	srv.on("getClients", `{"clients":[{"id":"c1","name":"Acme"},{"id":"c2","name":"Globex"}]}`)

	clients, err := srv.client().FetchClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Acme", clients[0]["name"])
}

func TestFetchLeadsReturnsRecordsAndStages(t *testing.T) {
	srv := newActionServer(t)
	srv.on("getLeads", `{
		"leads":[{"id":"l1","stageId":"new"}],
		"stages":[{"id":"new","title":"New","order":0}]
	}`)

	leads, stages, err := srv.client().FetchLeads(context.Background())
	require.NoError(t, err)
	assert.Len(t, leads, 1)
	require.Len(t, stages, 1)
	assert.Equal(t, "New", stages[0].Title)
}
