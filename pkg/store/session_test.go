package store

import (
	"testing"
)

func TestCollectValueKeepsSetsDisjoint(t *testing.T) {
	s := NewSession("s1")
	s.PendingFields = []string{"party_a", "party_b", "effective_date"}

	s.CollectValue("party_b", "Beta LLC")

	if s.IsPending("party_b") {
		t.Error("party_b still pending after collection")
	}
	if got := s.CollectedValues["party_b"]; got != "Beta LLC" {
		t.Errorf("collected value = %q, want %q", got, "Beta LLC")
	}
	if len(s.PendingFields) != 2 {
		t.Errorf("pending = %v, want 2 fields", s.PendingFields)
	}
	for _, f := range s.PendingFields {
		if _, collected := s.CollectedValues[f]; collected {
			t.Errorf("field %q is both pending and collected", f)
		}
	}
}

func TestClearValueReopensField(t *testing.T) {
	s := NewSession("s1")
	s.PendingFields = []string{"party_a"}
	s.CollectValue("party_a", "Acme")

	s.ClearValue("party_a")

	if !s.IsPending("party_a") {
		t.Error("party_a not pending after clear")
	}
	if _, ok := s.CollectedValues["party_a"]; ok {
		t.Error("party_a still collected after clear")
	}

	// Clearing twice must not duplicate the pending entry.
	s.ClearValue("party_a")
	if len(s.PendingFields) != 1 {
		t.Errorf("pending = %v, want single entry", s.PendingFields)
	}
}

func TestResetKeepsID(t *testing.T) {
	s := NewSession("s1")
	s.State = StateDocumentSaved
	s.TemplateID = "tpl-1"
	s.CollectValue("party_a", "Acme")
	s.GeneratedDocument = "doc"
	s.DocumentTitle = "title"
	s.SavedDocumentID = "doc-1"

	s.Reset()

	if s.ID != "s1" {
		t.Errorf("ID = %q, want preserved", s.ID)
	}
	if s.State != StateIdle {
		t.Errorf("State = %q, want idle", s.State)
	}
	if s.TemplateID != "" || s.GeneratedDocument != "" || s.DocumentTitle != "" || s.SavedDocumentID != "" {
		t.Error("Reset left residual draft data")
	}
	if len(s.PendingFields) != 0 || len(s.CollectedValues) != 0 {
		t.Error("Reset left residual field data")
	}
}

func TestStateValid(t *testing.T) {
	for _, s := range []State{StateIdle, StateTemplateDetected, StateCollectingInfo,
		StateReadyToGenerate, StateDocumentGenerated, StateDocumentSaved} {
		if !s.Valid() {
			t.Errorf("state %q reported invalid", s)
		}
	}
	if State("banana").Valid() {
		t.Error("unknown state reported valid")
	}
}
