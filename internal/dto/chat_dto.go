package dto

import "ai-docdraft-be/pkg/store"

type SendChatRequest struct {
	SessionId  string            `json:"session_id"`
	Message    string            `json:"message" validate:"required"`
	TemplateId string            `json:"template_id,omitempty"`
	Variables  map[string]string `json:"variables,omitempty"`
}

type SendChatResponse struct {
	SessionId         string            `json:"session_id"`
	Reply             string            `json:"reply"`
	State             store.State       `json:"state"`
	TemplateId        string            `json:"template_id,omitempty"`
	PendingFields     []string          `json:"pending_fields"`
	CollectedValues   map[string]string `json:"collected_values"`
	GeneratedDocument string            `json:"generated_document,omitempty"`
	DocumentTitle     string            `json:"document_title,omitempty"`
	DocumentSaved     bool              `json:"document_saved"`
	SavedDocumentId   string            `json:"saved_document_id,omitempty"`
}

type ResetSessionRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

// TurnError is surfaced for upstream failures (catalog, session store,
// document persistence). Retryable means resubmitting the same message is
// safe because the session state was left unchanged.
type TurnError struct {
	Message   string
	Retryable bool
	Err       error
}

func (e *TurnError) Error() string {
	return e.Message
}

func (e *TurnError) Unwrap() error {
	return e.Err
}
