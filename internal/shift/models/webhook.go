package models

import "fmt"

// WebhookPayload is the typed shape of a LINE WORKS callback body.
// Only text-message events are processed; everything else is skipped.
type WebhookPayload struct {
	Events []WebhookEvent `json:"events"`
}

type WebhookEvent struct {
	Type    string         `json:"type"`
	Source  WebhookSource  `json:"source"`
	Message WebhookMessage `json:"message"`
}

type WebhookSource struct {
	UserID string `json:"userId"`
}

type WebhookMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// IsTextMessage reports whether the event carries a text message body.
func (e WebhookEvent) IsTextMessage() bool {
	return e.Type == "message" && e.Message.Type == "text"
}

// Validate fails fast when a text-message event is missing the sender
// the ingestion path depends on. An empty message text is fine; it
// simply parses to no entries.
func (e WebhookEvent) Validate() error {
	if e.Source.UserID == "" {
		return fmt.Errorf("event is missing source.userId")
	}
	return nil
}
