package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/adapter/memory"
	"portfolio-chat/internal/config"
	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/usecase/chat"
)

type stubClient struct {
	resp  string
	calls int
}

func (c *stubClient) Complete(context.Context, chat.CompletionRequest) (string, error) {
	c.calls++
	return c.resp, nil
}

func newTestServer(t *testing.T, client *stubClient, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Config{
		APIKey:           "key",
		Model:            "test-model",
		SessionTTL:       time.Hour,
		ResumePath:       filepath.Join(t.TempDir(), "missing.pdf"),
		ProfileImagePath: "",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	record := domain.Portfolio{
		Profile:  domain.Profile{Name: "Sam Lee", Role: "Backend Engineer", Location: "Remote"},
		Summary:  "Builds services.",
		Skills:   []string{"Go", "SQL"},
		Projects: []domain.Project{{Name: "Queue", Description: "A job queue."}},
		Contact:  domain.Contact{GitHub: "https://github.example/sam"},
	}
	svc := chat.NewService(memory.NewStore(), client, record, cfg)
	s, err := NewServer(svc, cfg)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, h http.Handler) sessionView {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var view sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestIndexRendersProfileAndGreeting(t *testing.T) {
	h := newTestServer(t, &stubClient{}, nil).Handler()

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Sam Lee's Portfolio")
	assert.Contains(t, body, ">SL<")
	assert.Contains(t, body, "Backend Engineer")
	assert.Contains(t, body, "personal portfolio assistant")
	assert.Contains(t, body, `data-question="Download Resume"`)
	assert.NotContains(t, body, "/profile-image")
}

func TestStaticAssetsAreServed(t *testing.T) {
	h := newTestServer(t, &stubClient{}, nil).Handler()

	rec := do(t, h, http.MethodGet, "/static/app.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "WebSocket")
}

func TestCreateSessionStartsWithGreeting(t *testing.T) {
	h := newTestServer(t, &stubClient{}, nil).Handler()

	view := createSession(t, h)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, domain.ThemeDark, view.Theme)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, domain.RoleAI, view.Messages[0].Role)
	assert.Contains(t, string(view.Messages[0].HTML), "<li>Projects</li>")
}

func TestSendMessageResumeSkipsCompletion(t *testing.T) {
	client := &stubClient{resp: "unused"}
	h := newTestServer(t, client, nil).Handler()
	view := createSession(t, h)

	rec := do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/messages", `{"text":"Download Resume"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var msg messageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.True(t, msg.ResumeButton)
	assert.Equal(t, "You can download Sam Lee's latest resume below.", msg.Text)
	assert.Equal(t, 0, client.calls)
}

func TestSendMessageWithoutAPIKey(t *testing.T) {
	h := newTestServer(t, &stubClient{}, func(c *config.Config) { c.APIKey = "" }).Handler()
	view := createSession(t, h)

	rec := do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/messages", `{"text":"skills?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No API key set")

	rec = do(t, h, http.MethodGet, "/api/sessions/"+view.ID, "")
	var state sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.False(t, state.Loading)
	assert.Len(t, state.Messages, 3)
}

func TestSendMessageErrors(t *testing.T) {
	h := newTestServer(t, &stubClient{resp: "ok"}, nil).Handler()
	view := createSession(t, h)

	rec := do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/messages", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/messages", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/sessions/nope/messages", `{"text":"hi"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendMessageRateLimited(t *testing.T) {
	h := newTestServer(t, &stubClient{resp: "ok"}, func(c *config.Config) { c.ChatRatePerMin = 1 }).Handler()
	view := createSession(t, h)

	rec := do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/messages", `{"text":"one"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/messages", `{"text":"two"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRejectedSubmissionsDoNotUseRateBudget(t *testing.T) {
	srv := newTestServer(t, &stubClient{resp: "ok"}, func(c *config.Config) { c.ChatRatePerMin = 1 })
	h := srv.Handler()
	view := createSession(t, h)
	path := "/api/sessions/" + view.ID + "/messages"

	rec := do(t, h, http.MethodPost, path, `{"text":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	sess, err := srv.svc.Session(view.ID)
	require.NoError(t, err)
	_, err = sess.Begin("in flight")
	require.NoError(t, err)

	rec = do(t, h, http.MethodPost, path, `{"text":"again"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	sess.Commit(domain.Message{Role: domain.RoleAI, Text: "done"})

	rec = do(t, h, http.MethodPost, path, `{"text":"now"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, path, `{"text":"over budget"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestThemeToggleTwiceRestoresTheme(t *testing.T) {
	h := newTestServer(t, &stubClient{}, nil).Handler()
	view := createSession(t, h)

	rec := do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/theme", "")
	assert.JSONEq(t, `{"theme":"light"}`, rec.Body.String())
	rec = do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/theme", "")
	assert.JSONEq(t, `{"theme":"dark"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/sessions/"+view.ID, "")
	var state sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Len(t, state.Messages, 1)
}

func TestModalState(t *testing.T) {
	h := newTestServer(t, &stubClient{}, nil).Handler()
	view := createSession(t, h)

	rec := do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/modal", `{"open":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/sessions/"+view.ID, "")
	var state sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.ModalOpen)
}

func TestDeleteSession(t *testing.T) {
	h := newTestServer(t, &stubClient{}, nil).Handler()
	view := createSession(t, h)

	rec := do(t, h, http.MethodDelete, "/api/sessions/"+view.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/sessions/"+view.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSections(t *testing.T) {
	h := newTestServer(t, &stubClient{}, nil).Handler()

	rec := do(t, h, http.MethodGet, "/api/sections/skills", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"markdown":"**Skills:**\n- Go\n- SQL"`)

	rec = do(t, h, http.MethodGet, "/api/sections?q=show+me+your+projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"key":"projects"`)

	rec = do(t, h, http.MethodGet, "/api/sections/hobbies", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/sections", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResumeDownload(t *testing.T) {
	h := newTestServer(t, &stubClient{}, nil).Handler()
	rec := do(t, h, http.MethodGet, "/resume", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))
	h = newTestServer(t, &stubClient{}, func(c *config.Config) { c.ResumePath = path }).Handler()

	rec = do(t, h, http.MethodGet, "/resume", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="resume.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, &stubClient{}, func(c *config.Config) { c.APIKey = "" }).Handler()

	rec := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","completionAuth":false}`, rec.Body.String())
}

func TestWebSocketStreamsWordsThenMessage(t *testing.T) {
	answer := "Sam writes Go services."
	h := newTestServer(t, &stubClient{resp: answer}, nil).Handler()
	srv := httptest.NewServer(h)
	defer srv.Close()

	view := createSession(t, h)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/" + view.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(wsInbound{Text: "what do you build?"}))

	var partials []string
	for {
		var frame wsFrame
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, conn.ReadJSON(&frame))
		if frame.Type == "partial" {
			partials = append(partials, frame.Text)
			continue
		}
		require.Equal(t, "message", frame.Type)
		require.NotNil(t, frame.Message)
		assert.Equal(t, answer, frame.Message.Text)
		break
	}

	assert.Equal(t, []string{"Sam ", "Sam writes ", "Sam writes Go ", answer}, partials)
}

func TestWebSocketReportsEmptyInput(t *testing.T) {
	h := newTestServer(t, &stubClient{resp: "x"}, nil).Handler()
	srv := httptest.NewServer(h)
	defer srv.Close()

	view := createSession(t, h)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/" + view.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(wsInbound{Text: "  "}))
	var frame wsFrame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "error", frame.Type)
	assert.Equal(t, domain.ErrEmptyMessage.Error(), frame.Error)
}
