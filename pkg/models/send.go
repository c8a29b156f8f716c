package models

// SendPayload is the message body handed to the Send API. Exactly one of
// Text or Attachment is set.
type SendPayload struct {
	Text       string              `json:"text,omitempty"`
	Attachment *TemplateAttachment `json:"attachment,omitempty"`
}

// TemplateAttachment wraps a structured template message
type TemplateAttachment struct {
	Type    string          `json:"type"`
	Payload TemplatePayload `json:"payload"`
}

// TemplatePayload is the button template body
type TemplatePayload struct {
	TemplateType string   `json:"template_type"`
	Text         string   `json:"text"`
	Buttons      []Button `json:"buttons,omitempty"`
}

// Button is a postback button inside a button template
type Button struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// TextPayload builds a plain text send payload
func TextPayload(text string) SendPayload {
	return SendPayload{Text: text}
}

// ButtonTemplate builds a button template send payload
func ButtonTemplate(text string, buttons ...Button) SendPayload {
	return SendPayload{
		Attachment: &TemplateAttachment{
			Type: "template",
			Payload: TemplatePayload{
				TemplateType: "button",
				Text:         text,
				Buttons:      buttons,
			},
		},
	}
}

// SendEnvelope addresses a payload to one recipient
type SendEnvelope struct {
	Recipient Participant `json:"recipient"`
	Message   SendPayload `json:"message"`
}

// SendResult reports the outcome of one Send API call. Delivery is
// best-effort: a failed result is logged by the caller, never raised.
type SendResult struct {
	Delivered bool
	Reason    string
}

// Sent is the successful SendResult
func Sent() SendResult {
	return SendResult{Delivered: true}
}

// Failed builds a SendResult carrying the failure reason
func Failed(reason string) SendResult {
	return SendResult{Reason: reason}
}
