package web

import (
	"net/http"

	"github.com/gorilla/websocket"

	"portfolio-chat/internal/reveal"
)

type wsInbound struct {
	Text string `json:"text"`
}

type wsFrame struct {
	Type    string       `json:"type"`
	Token   string       `json:"token,omitempty"`
	Text    string       `json:"text,omitempty"`
	Message *messageView `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// handleWebSocket runs turns submitted over the socket one after another.
// Reads and writes happen on this goroutine only, so a new submission is not
// read until the current reveal has been committed.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	logger := s.logger.With().Str("session_id", sess.ID).Logger()
	logger.Debug().Msg("websocket attached")

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}

		if err := s.admit(sess, in.Text); err != nil {
			if werr := conn.WriteJSON(wsFrame{Type: "error", Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		msg, err := s.svc.HandleMessage(r.Context(), sess, in.Text, func(step reveal.Step) {
			if werr := conn.WriteJSON(wsFrame{Type: "partial", Token: step.Token, Text: step.Shown}); werr != nil {
				logger.Debug().Err(werr).Msg("partial dropped")
			}
		})
		if err != nil {
			if werr := conn.WriteJSON(wsFrame{Type: "error", Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		view := s.viewMessage(msg)
		if err := conn.WriteJSON(wsFrame{Type: "message", Message: &view}); err != nil {
			return
		}
	}
}
