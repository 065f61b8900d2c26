package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-chat/internal/classify"
	"portfolio-chat/internal/config"
	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/portfolio"
	"portfolio-chat/internal/reveal"
)

const noResponseText = "[No response from AI]"

var missingKeyText = fmt.Sprintf(
	"[Error: No API key set. Please set %s in your environment.]", config.APIKeyEnv)

type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	Model    string
	Messages []Message
}

type Message struct {
	Role string
	Text string
}

// PartialFunc observes the word reveal of an answer.
type PartialFunc func(step reveal.Step)

type Service struct {
	store     domain.SessionStore
	client    Client
	portfolio domain.Portfolio
	cfg       config.Config
	prompt    string
	revealer  *reveal.Revealer
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(store domain.SessionStore, client Client, record domain.Portfolio, cfg config.Config) *Service {
	return &Service{
		store:     store,
		client:    client,
		portfolio: record,
		cfg:       cfg,
		prompt:    portfolio.ContextPrompt(record),
		revealer:  reveal.New(cfg.RevealDelay),
		logger:    log.With().Str("component", "chat").Logger(),
		now:       time.Now,
	}
}

func (s *Service) Portfolio() domain.Portfolio {
	return s.portfolio
}

// NewSession opens a session seeded with the greeting.
func (s *Service) NewSession() *domain.Session {
	sess := s.store.Create()
	s.greet(sess)
	return sess
}

func (s *Service) Session(id string) (*domain.Session, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// SessionFor returns the session with the given id, creating and greeting it
// on first use.
func (s *Service) SessionFor(id string) *domain.Session {
	sess := s.store.GetOrCreate(id)
	s.greet(sess)
	return sess
}

func (s *Service) EndSession(id string) {
	s.store.Delete(id)
}

// Sweep drops sessions idle for longer than the configured ttl.
func (s *Service) Sweep() int {
	return s.store.Sweep(s.cfg.SessionTTL)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug().Int("sessions", n).Msg("swept idle sessions")
			}
		}
	}
}

// Section renders one portfolio section as markdown.
func (s *Service) Section(key string) (string, bool) {
	out := portfolio.FormatSection(key, s.portfolio)
	return out, out != ""
}

func (s *Service) greet(sess *domain.Session) {
	sess.Seed(domain.Message{
		Role:      domain.RoleAI,
		Text:      portfolio.Greeting(s.portfolio),
		Timestamp: s.now(),
	})
}

// HandleMessage runs one turn on sess and returns the assistant message it
// committed. Only ErrEmptyMessage and ErrBusy are returned as errors; every
// other failure is committed to the transcript as an error message.
// onPartial, when set, receives every step of the word reveal.
func (s *Service) HandleMessage(ctx context.Context, sess *domain.Session, text string, onPartial PartialFunc) (domain.Message, error) {
	if _, err := sess.Begin(text); err != nil {
		return domain.Message{}, err
	}

	logger := s.logger.With().Str("session_id", sess.ID).Logger()
	hints := classify.Analyze(text, s.portfolio.Projects)
	logger.Debug().
		Bool("resume", hints.Resume).
		Str("section", hints.Section).
		Bool("simple", hints.SimpleExplanation).
		Bool("tech", hints.Tech).
		Bool("impact", hints.Impact).
		Str("project", hints.Project).
		Msg("query received")

	if hints.Resume {
		return s.commit(sess, domain.Message{
			Role:         domain.RoleAI,
			Text:         portfolio.ResumeOffer(s.portfolio),
			ResumeButton: true,
		}), nil
	}

	if !s.cfg.HasAPIKey() {
		logger.Warn().Msg("completion skipped, no api key configured")
		return s.commit(sess, domain.Message{Role: domain.RoleAI, Text: missingKeyText}), nil
	}

	resp, err := s.client.Complete(ctx, CompletionRequest{
		Model:    s.cfg.Model,
		Messages: s.buildMessages(sess.Messages()),
	})
	if err != nil {
		logger.Error().Err(err).Msg("completion request failed")
		return s.commit(sess, domain.Message{
			Role: domain.RoleAI,
			Text: fmt.Sprintf("[Error: %s]", err.Error()),
		}), nil
	}

	answer := strings.TrimSpace(resp)
	if answer == "" {
		answer = noResponseText
	}

	revealer := s.revealer
	if onPartial == nil {
		revealer = reveal.New(0)
	}
	n, err := revealer.Run(ctx, answer, func(step reveal.Step) {
		sess.AppendStream(step.Token)
		if onPartial != nil {
			onPartial(step)
		}
	})
	if err != nil {
		logger.Warn().Err(err).Int("revealed", n).Msg("reveal interrupted, committing full answer")
	}

	return s.commit(sess, domain.Message{Role: domain.RoleAI, Text: answer}), nil
}

func (s *Service) commit(sess *domain.Session, msg domain.Message) domain.Message {
	msg.Timestamp = s.now()
	sess.Commit(msg)
	return msg
}

// buildMessages prepends the context prompt to the transcript, which already
// ends with the new user turn.
func (s *Service) buildMessages(history []domain.Message) []Message {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{
		Role: domain.RoleSystem,
		Text: s.prompt,
	})
	for _, h := range history {
		messages = append(messages, Message{
			Role: domain.CompletionRole(h.Role),
			Text: h.Text,
		})
	}
	return messages
}
