// Package chat holds the team chat panel's message log. The log lives for
// one server run only: nothing is persisted and nothing is delivered to
// other processes.
package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"crm-management-api/internal/model"
)

type Session struct {
	mu   sync.Mutex
	msgs []model.ChatMessage
}

// NewSession starts the log with the system welcome message.
func NewSession() *Session {
	s := &Session{}
	s.msgs = append(s.msgs, model.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    "System",
		Text:      "Welcome to the team chat!",
		Timestamp: time.Now(),
	})
	return s
}

// Send appends a message and returns it. A text that is empty after
// trimming is a no-op and returns nil; that is the intended UX, not an
// error.
func (s *Session) Send(sender, text string) *model.ChatMessage {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	msg := model.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
	return &msg
}

// Messages returns a snapshot copy in append order.
func (s *Session) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatMessage, len(s.msgs))
	copy(out, s.msgs)
	return out
}
