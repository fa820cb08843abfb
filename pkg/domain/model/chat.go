package model

// ChatPayload represents the JSON payload of an incoming chat webhook
// (Rocket.Chat, and Slack compatible).
type ChatPayload struct {
	Username string `json:"username,omitempty"`
	// IconEmoji is never set by the forwarder, so it never appears on the wire.
	IconEmoji   string       `json:"icon_emoji,omitempty"`
	Channel     string       `json:"channel,omitempty"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment carries one context entry of a log record
type Attachment struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}
