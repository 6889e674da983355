package server

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/sanctum-app/sanctum/pkg/vault"

	"github.com/gorilla/websocket"
)

type chatRequest struct {
	Content string `json:"content" validate:"required"`
}

type chatResponse struct {
	Message vault.Message `json:"message"`
	Reply   vault.Message `json:"reply"`
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.vault.History()

	if err != nil {
		respondVaultError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"messages": history,
	})
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatRequest

	if !s.decode(w, r, &req) {
		return
	}

	response, err := s.converse(r, req.Content)

	if err != nil {
		respondVaultError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// converse appends the user message, generates the reply and appends it
// too. Both turns are persisted; the model call happens outside the vault
// lock so a slow upstream never blocks other views.
func (s *Server) converse(r *http.Request, content string) (*chatResponse, error) {
	profile, err := s.vault.Profile()

	if err != nil {
		return nil, err
	}

	memories, err := s.vault.Memories()

	if err != nil {
		return nil, err
	}

	entries, err := s.vault.Journal()

	if err != nil {
		return nil, err
	}

	history, err := s.vault.History()

	if err != nil {
		return nil, err
	}

	message, err := s.vault.AppendMessage(vault.RoleUser, content)

	if err != nil {
		return nil, err
	}

	text := s.chain.Converse(r.Context(), history, content, profile, memories, entries)

	reply, err := s.vault.AppendMessage(vault.RoleModel, text)

	if err != nil {
		return nil, err
	}

	return &chatResponse{
		Message: message,
		Reply:   reply,
	}, nil
}

var upgrader = websocket.Upgrader{
	// The gate token already authenticates the socket; the vault is a
	// local single-user service, so origins are not restricted here.
	CheckOrigin: func(*http.Request) bool { return true },
}

type socketEvent struct {
	Type    string         `json:"type"`
	Message *vault.Message `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// handleChatSocket runs a chat session over a WebSocket. The client sends
// {"content": ...} frames; each one yields the persisted user message frame
// followed by the model reply frame.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)

	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	defer conn.Close()

	for {
		var req chatRequest

		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("websocket read failed")
			}

			return
		}

		if req.Content == "" {
			if err := conn.WriteJSON(socketEvent{Type: "error", Error: "content is required"}); err != nil {
				return
			}

			continue
		}

		response, err := s.converse(r, req.Content)

		if err != nil {
			if err := conn.WriteJSON(socketEvent{Type: "error", Error: err.Error()}); err != nil {
				return
			}

			continue
		}

		if err := conn.WriteJSON(socketEvent{Type: "message", Message: &response.Message}); err != nil {
			return
		}

		if err := conn.WriteJSON(socketEvent{Type: "message", Message: &response.Reply}); err != nil {
			return
		}
	}
}
