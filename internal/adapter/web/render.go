package web

import (
	"bytes"
	"html/template"

	"portfolio-chat/internal/domain"
)

type messageView struct {
	Role         string        `json:"role"`
	Text         string        `json:"text"`
	HTML         template.HTML `json:"html"`
	ResumeButton bool          `json:"resumeButton,omitempty"`
}

type sessionView struct {
	domain.SessionState
	Messages []messageView `json:"messages"`
}

// markdown renders assistant text. Raw HTML in the source is not passed
// through.
func (s *Server) markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		s.logger.Warn().Err(err).Msg("markdown render failed")
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) // #nosec G203 -- goldmark escapes raw HTML by default.
}

func (s *Server) viewMessage(m domain.Message) messageView {
	v := messageView{
		Role:         m.Role,
		Text:         m.Text,
		ResumeButton: m.ResumeButton,
	}
	if m.Role == domain.RoleAI {
		v.HTML = s.markdown(m.Text)
	} else {
		v.HTML = template.HTML(template.HTMLEscapeString(m.Text))
	}
	return v
}

func (s *Server) viewSession(state domain.SessionState) sessionView {
	views := make([]messageView, 0, len(state.Messages))
	for _, m := range state.Messages {
		views = append(views, s.viewMessage(m))
	}
	return sessionView{SessionState: state, Messages: views}
}
