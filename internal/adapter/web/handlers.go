package web

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"portfolio-chat/internal/classify"
	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/portfolio"
)

type pageData struct {
	Portfolio      domain.Portfolio
	Session        sessionView
	QuickQuestions []string
	HasImage       bool
	Monogram       string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.svc.NewSession()

	data := pageData{
		Portfolio:      s.svc.Portfolio(),
		Session:        s.viewSession(sess.Snapshot()),
		QuickQuestions: portfolio.QuickQuestions,
		HasImage:       fileExists(s.cfg.ProfileImagePath),
		Monogram:       monogram(s.svc.Portfolio().Profile.Name),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error().Err(err).Msg("render index")
	}
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	path := s.cfg.ResumePath
	if !fileExists(path) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}

func (s *Server) handleProfileImage(w http.ResponseWriter, r *http.Request) {
	path := s.cfg.ProfileImagePath
	if !fileExists(path) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"completionAuth": s.cfg.HasAPIKey(),
	})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Portfolio())
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	s.writeSection(w, r.PathValue("key"))
}

func (s *Server) handleSectionQuery(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing q")
		return
	}
	s.writeSection(w, classify.SectionKey(q))
}

func (s *Server) writeSection(w http.ResponseWriter, key string) {
	out, ok := s.svc.Section(key)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown section")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"key":      key,
		"markdown": out,
		"html":     s.markdown(out),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.svc.NewSession()
	writeJSON(w, http.StatusCreated, s.viewSession(sess.Snapshot()))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.viewSession(sess.Snapshot()))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.svc.EndSession(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": sess.ToggleTheme()})
}

func (s *Server) handleModal(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body struct {
		Open bool `json:"open"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	sess.SetModal(body.Open)
	writeJSON(w, http.StatusOK, map[string]bool{"modalOpen": body.Open})
}

type sendRequest struct {
	Text string `json:"text"`
}

// handleSendMessage runs a whole turn and answers with the committed message.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body sendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := s.admit(sess, body.Text); err != nil {
		writeError(w, turnErrorStatus(err), err.Error())
		return
	}

	msg, err := s.svc.HandleMessage(r.Context(), sess, body.Text, nil)
	if err != nil {
		writeError(w, turnErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.viewMessage(msg))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	sess, err := s.svc.Session(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return sess, true
}

var errRateLimited = errors.New("too many messages, slow down")

// admit charges the session's rate limit for a submission that would start a
// turn. Empty and busy submissions are rejected first and cost nothing.
func (s *Server) admit(sess *domain.Session, text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyMessage
	}
	if sess.Loading() {
		return domain.ErrBusy
	}
	if !s.limiter.Allow(sess.ID) {
		return errRateLimited
	}
	return nil
}

func turnErrorStatus(err error) int {
	switch {
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBusy):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// monogram is the upper-cased initials of up to two name parts.
func monogram(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, unicode.ToUpper([]rune(part)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
