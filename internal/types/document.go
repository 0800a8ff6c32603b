package types

import "time"

// Document is a knowledge-base file visible in the admin console. Indexing
// happens server-side; the client only lists, uploads, and deletes.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	Status      string    `json:"status,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at,omitempty"`
}

// SystemSettings is the admin-editable service configuration.
type SystemSettings struct {
	AllowRegistration  bool   `json:"allow_registration"`
	MaintenanceMode    bool   `json:"maintenance_mode"`
	ChatModel          string `json:"chat_model,omitempty"`
	MaxUploadSizeMB    int    `json:"max_upload_size_mb,omitempty"`
	MaxConversationAge int    `json:"max_conversation_age_days,omitempty"`
}
