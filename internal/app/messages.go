package app

import "time"

// DefaultMessageCount is the number of messages a session keeps.
const DefaultMessageCount = 100

// Message is one entry of the message surface.
type Message struct {
	Level LogLevel
	Text  string
	Time  time.Time
}

// Messages is a bounded ring of messages, oldest dropped first.
type Messages struct {
	entries []Message
	size    int
	now     func() time.Time
}

// NewMessages creates a ring holding up to size messages.
func NewMessages(size int) *Messages {
	if size <= 0 {
		size = DefaultMessageCount
	}
	return &Messages{size: size, now: time.Now}
}

// Add appends a message.
func (m *Messages) Add(level LogLevel, text string) {
	if len(m.entries) == m.size {
		copy(m.entries, m.entries[1:])
		m.entries = m.entries[:m.size-1]
	}
	m.entries = append(m.entries, Message{Level: level, Text: text, Time: m.now()})
}

// Last returns the newest message.
func (m *Messages) Last() (Message, bool) {
	if len(m.entries) == 0 {
		return Message{}, false
	}
	return m.entries[len(m.entries)-1], true
}

// LastError returns the newest message at error level.
func (m *Messages) LastError() (Message, bool) {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Level >= LogLevelError {
			return m.entries[i], true
		}
	}
	return Message{}, false
}

// All returns the messages, oldest first.
func (m *Messages) All() []Message {
	return append([]Message(nil), m.entries...)
}

// Len returns the number of messages held.
func (m *Messages) Len() int {
	return len(m.entries)
}
