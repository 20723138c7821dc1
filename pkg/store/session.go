package store

import "time"

// State is the closed set of conversation states. Transitions between states
// are owned by the engine; nothing else may assign them.
type State string

const (
	StateIdle              State = "idle"
	StateTemplateDetected  State = "template_detected"
	StateCollectingInfo    State = "collecting_info"
	StateReadyToGenerate   State = "ready_to_generate"
	StateDocumentGenerated State = "document_generated"
	StateDocumentSaved     State = "document_saved"
)

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case StateIdle, StateTemplateDetected, StateCollectingInfo,
		StateReadyToGenerate, StateDocumentGenerated, StateDocumentSaved:
		return true
	}
	return false
}

// Session represents the active document-drafting conversation state in memory.
// One session object exists per session id; the engine performs a
// read-modify-write on it under a per-session lock.
type Session struct {
	ID    string `json:"id"` // ChatSessionID
	State State  `json:"state"`

	// THE TARGET (template the user is filling in; empty only while idle)
	TemplateID string `json:"template_id"`

	// THE CHECKLIST (variables still unresolved, in template order)
	PendingFields []string `json:"pending_fields"`

	// THE LEDGER (variable name -> resolved value; disjoint from PendingFields)
	CollectedValues map[string]string `json:"collected_values"`

	// Output of the renderer; set only in document_generated / document_saved
	GeneratedDocument string `json:"generated_document,omitempty"`
	DocumentTitle     string `json:"document_title,omitempty"`

	// Id of the persisted document record once saved
	SavedDocumentID string `json:"saved_document_id,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a fresh idle session for the given id.
func NewSession(id string) *Session {
	return &Session{
		ID:              id,
		State:           StateIdle,
		PendingFields:   []string{},
		CollectedValues: map[string]string{},
		UpdatedAt:       time.Now(),
	}
}

// Reset clears everything except the session id, returning the session to idle.
func (s *Session) Reset() {
	s.State = StateIdle
	s.TemplateID = ""
	s.PendingFields = []string{}
	s.CollectedValues = map[string]string{}
	s.GeneratedDocument = ""
	s.DocumentTitle = ""
	s.SavedDocumentID = ""
	s.UpdatedAt = time.Now()
}

// IsPending reports whether the named field is still unresolved.
func (s *Session) IsPending(field string) bool {
	for _, f := range s.PendingFields {
		if f == field {
			return true
		}
	}
	return false
}

// CollectValue records a resolved value and drops the field from the pending
// list, keeping the two sets disjoint.
func (s *Session) CollectValue(field, value string) {
	if s.CollectedValues == nil {
		s.CollectedValues = map[string]string{}
	}
	s.CollectedValues[field] = value
	remaining := s.PendingFields[:0]
	for _, f := range s.PendingFields {
		if f != field {
			remaining = append(remaining, f)
		}
	}
	s.PendingFields = remaining
}

// ClearValue removes a collected value and re-adds the field to the pending
// list (used by the edit directive).
func (s *Session) ClearValue(field string) {
	delete(s.CollectedValues, field)
	if !s.IsPending(field) {
		s.PendingFields = append(s.PendingFields, field)
	}
}
