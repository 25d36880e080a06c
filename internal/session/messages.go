package session

import "time"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Message is one entry of the session's rolling user-visible log. Failures
// are appended here, never thrown past the engine.
type Message struct {
	Time     time.Time `json:"time"`
	Severity Severity  `json:"severity"`
	Text     string    `json:"text"`
	Stage    string    `json:"stage,omitempty"`
}

const messageLogLimit = 100

func (s *State) pushMessage(severity Severity, text, stage string) {
	s.Messages = append(s.Messages, Message{
		Time:     time.Now(),
		Severity: severity,
		Text:     text,
		Stage:    stage,
	})
	if len(s.Messages) > messageLogLimit {
		s.Messages = s.Messages[len(s.Messages)-messageLogLimit:]
	}
}
