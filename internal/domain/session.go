package domain

import (
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrEmptyMessage    = errors.New("empty message")
	ErrBusy            = errors.New("a response is already in progress")
	ErrSessionNotFound = errors.New("session not found")
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// SessionState is a point-in-time copy of a Session.
type SessionState struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	Input     string    `json:"input"`
	Loading   bool      `json:"loading"`
	Streamed  string    `json:"streamed"`
	Theme     string    `json:"theme"`
	ModalOpen bool      `json:"modalOpen"`
}

// Session holds the ephemeral state of one visitor conversation.
// Messages are append-only and at most one turn runs at a time.
type Session struct {
	ID string

	mu         sync.Mutex
	messages   []Message
	input      string
	loading    bool
	streamed   strings.Builder
	theme      string
	modalOpen  bool
	lastActive time.Time
	now        func() time.Time
}

func NewSession(id string) *Session {
	s := &Session{
		ID:    id,
		theme: ThemeDark,
		now:   time.Now,
	}
	s.lastActive = s.now()
	return s
}

// Seed appends msgs only when the transcript is still empty.
func (s *Session) Seed(msgs ...Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) > 0 {
		return false
	}
	s.messages = append(s.messages, msgs...)
	return true
}

// Begin opens a turn: the user message is appended, the input and streamed
// buffers are cleared and the session is marked loading.
func (s *Session) Begin(text string) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}
	if s.loading {
		return Message{}, ErrBusy
	}

	msg := Message{
		Role:      RoleUser,
		Text:      text,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, msg)
	s.input = ""
	s.streamed.Reset()
	s.loading = true
	s.lastActive = msg.Timestamp
	return msg, nil
}

func (s *Session) AppendStream(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streamed.WriteString(token)
	s.lastActive = s.now()
}

// Commit closes the current turn with msg and clears the streamed buffer.
func (s *Session) Commit(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	s.messages = append(s.messages, msg)
	s.streamed.Reset()
	s.loading = false
	s.lastActive = msg.Timestamp
}

func (s *Session) SetInput(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrBusy
	}
	s.input = text
	return nil
}

func (s *Session) ToggleTheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	return s.theme
}

func (s *Session) SetModal(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalOpen = open
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) Streamed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamed.String()
}

func (s *Session) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		ID:        s.ID,
		Messages:  append([]Message{}, s.messages...),
		Input:     s.input,
		Loading:   s.loading,
		Streamed:  s.streamed.String(),
		Theme:     s.theme,
		ModalOpen: s.modalOpen,
	}
}
