package models

// WebhookPayload represents the incoming JSON payload from the Messenger Platform
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one page-level entry; deliveries may batch several
type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent carries either a message or a postback, never both
type MessagingEvent struct {
	Sender    Participant `json:"sender"`
	Recipient Participant `json:"recipient"`
	Timestamp int64       `json:"timestamp"`
	Message   *Message    `json:"message,omitempty"`
	Postback  *Postback   `json:"postback,omitempty"`
}

// Participant identifies a conversation party by PSID
type Participant struct {
	ID string `json:"id"`
}

// Message is an inbound user message (free text and/or attachments)
type Message struct {
	MID         string       `json:"mid,omitempty"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment references uploaded media by URL
type Attachment struct {
	Type    string            `json:"type"`
	Payload AttachmentPayload `json:"payload"`
}

type AttachmentPayload struct {
	URL string `json:"url"`
}

// Postback is a structured button click carrying an opaque payload
type Postback struct {
	Title   string `json:"title,omitempty"`
	Payload string `json:"payload"`
}
