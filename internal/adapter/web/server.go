// Package web serves the portfolio page, its JSON API and the websocket that
// streams answers word by word.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/usecase/chat"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const pruneInterval = time.Minute

type Server struct {
	svc      *chat.Service
	cfg      config.Config
	mux      *http.ServeMux
	tmpl     *template.Template
	md       goldmark.Markdown
	limiter  *limiter
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewServer(svc *chat.Service, cfg config.Config) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}

	s := &Server{
		svc:     svc,
		cfg:     cfg,
		mux:     http.NewServeMux(),
		tmpl:    tmpl,
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		limiter: newLimiter(cfg.ChatRatePerMin),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: log.With().Str("component", "web").Logger(),
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupRoutes() error {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return errors.Wrap(err, "static assets")
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	s.mux.HandleFunc("GET /resume", s.handleResume)
	s.mux.HandleFunc("GET /profile-image", s.handleProfileImage)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /api/portfolio", s.handlePortfolio)
	s.mux.HandleFunc("GET /api/sections", s.handleSectionQuery)
	s.mux.HandleFunc("GET /api/sections/{key}", s.handleSection)

	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	s.mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/theme", s.handleToggleTheme)
	s.mux.HandleFunc("POST /api/sessions/{id}/modal", s.handleModal)
	s.mux.HandleFunc("POST /api/sessions/{id}/messages", s.handleSendMessage)
	s.mux.HandleFunc("GET /api/sessions/{id}/ws", s.handleWebSocket)
	return nil
}

func (s *Server) Handler() http.Handler {
	return recoverMiddleware(s.logger)(logMiddleware(s.logger)(s.mux))
}

// Run serves until ctx is cancelled. Idle sessions are swept by
// chat.Service.RunSweeper, which the caller runs alongside.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.pruneLimiters(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.HTTPAddr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("http server forced to shut down")
		}
		return ctx.Err()
	}
}

// pruneLimiters forgets the rate limiters of sessions that no longer exist.
func (s *Server) pruneLimiters(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.prune(func(id string) bool {
				_, err := s.svc.Session(id)
				return err == nil
			})
		}
	}
}
