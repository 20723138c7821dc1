package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title        string            `json:"title" validate:"required,max=300"`
	Content      string            `json:"content" validate:"required"`
	TemplateId   string            `json:"template_id,omitempty"`
	FilledValues map[string]string `json:"filled_values,omitempty"`
}

type UpdateDocumentRequest struct {
	Id           uuid.UUID         `json:"-"`
	Title        *string           `json:"title"`
	Content      *string           `json:"content"`
	FilledValues map[string]string `json:"filled_values,omitempty"`
}

type DocumentResponse struct {
	Id           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	TemplateId   *uuid.UUID        `json:"template_id,omitempty"`
	TemplateName string            `json:"template_name,omitempty"`
	FilledValues map[string]string `json:"filled_values"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    *time.Time        `json:"updated_at"`
}

// PublishDocumentSavedMessage is the in-process event payload emitted after a
// document is persisted.
type PublishDocumentSavedMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
