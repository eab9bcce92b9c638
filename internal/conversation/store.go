// Package conversation holds the append-only transcript of one session.
package conversation

import (
	"time"

	"github.com/google/uuid"

	"wisdomarc/internal/wisdom"
)

// Sender tags who produced a message.
type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

func (s Sender) String() string {
	if s == SenderBot {
		return "council"
	}
	return "you"
}

// Message is one transcript entry. User messages carry Text; bot messages
// carry a Variant. Messages are never mutated after append.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	Variant   wisdom.Variant
	Timestamp time.Time
}

// Store is the ordered transcript. It has exactly one writer (the update
// loop), so no locking discipline applies; removal and edits do not exist.
type Store struct {
	messages []Message
}

func NewStore() *Store {
	return &Store{}
}

// AppendUser records a submitted query and returns the committed message.
func (s *Store) AppendUser(text string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// AppendBot records a normalized service reply and returns the committed
// message.
func (s *Store) AppendBot(variant wisdom.Variant) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Sender:    SenderBot,
		Variant:   variant,
		Timestamp: time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// All returns a snapshot in arrival order; mutating it does not touch the
// store.
func (s *Store) All() []Message {
	return append([]Message(nil), s.messages...)
}

func (s *Store) Len() int {
	return len(s.messages)
}
