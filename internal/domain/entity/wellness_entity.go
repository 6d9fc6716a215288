package entity

import "time"

// ChatMessage is one entry in an account's chat history. It has no identity
// of its own; it lives inside exactly one Account document.
type ChatMessage struct {
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	Sentiment string    `json:"sentiment"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodLog is one entry in an account's mood journal.
type MoodLog struct {
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat sender labels.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)
