package models

// WebhookPayload is the envelope Meta posts for both message-status and
// template-status events.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Value WebhookValue `json:"value"`
			Field string       `json:"field"`
		} `json:"changes"`
	} `json:"entry"`
}

type WebhookValue struct {
	MessagingProduct string          `json:"messaging_product,omitempty"`
	Statuses         []MessageStatus `json:"statuses,omitempty"`

	// Template status update events (field "message_template_status_update")
	Event                   string `json:"event,omitempty"`
	MessageTemplateID       int64  `json:"message_template_id,omitempty"`
	MessageTemplateName     string `json:"message_template_name,omitempty"`
	MessageTemplateLanguage string `json:"message_template_language,omitempty"`
	Reason                  string `json:"reason,omitempty"`

	// Template quality update events (field "message_template_quality_update")
	NewQualityScore string `json:"new_quality_score,omitempty"`
}

// MessageStatus is one delivery-state transition: sent, delivered, read, failed.
type MessageStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}
