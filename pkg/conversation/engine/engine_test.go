package engine

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"ai-docdraft-be/pkg/conversation/extract"
	"ai-docdraft-be/pkg/conversation/intent"
	"ai-docdraft-be/pkg/store"
	"ai-docdraft-be/pkg/template"
)

type stubCatalog struct {
	schemas []*template.Schema
}

func (c *stubCatalog) List(_ context.Context) ([]*template.Schema, error) {
	return c.schemas, nil
}

func (c *stubCatalog) Get(_ context.Context, id string) (*template.Schema, error) {
	for _, s := range c.schemas {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func ndaCatalog() *stubCatalog {
	content := "NDA between {party_a} and {party_b}, effective {effective_date}."
	return &stubCatalog{schemas: []*template.Schema{{
		ID:          "tpl-nda",
		Name:        "Non-Disclosure Agreement",
		Description: "Mutual NDA between two parties protecting confidential information",
		Content:     content,
		Variables:   template.ScanPlaceholders(content),
	}}}
}

func newTestEngine() *Engine {
	logger := log.New(io.Discard, "", 0)
	catalog := ndaCatalog()
	return New(catalog, intent.NewMatcher(catalog, logger), extract.NewExtractor(logger), logger)
}

func step(t *testing.T, e *Engine, s *store.Session, message string) *StepResult {
	t.Helper()
	res, err := e.Step(context.Background(), s, message, "", nil)
	if err != nil {
		t.Fatalf("Step(%q) error: %v", message, err)
	}
	assertDisjoint(t, s)
	return res
}

// assertDisjoint checks that no field is simultaneously pending and collected.
func assertDisjoint(t *testing.T, s *store.Session) {
	t.Helper()
	for _, f := range s.PendingFields {
		if _, ok := s.CollectedValues[f]; ok {
			t.Fatalf("field %q is both pending and collected", f)
		}
	}
}

func TestFullDraftingFlow(t *testing.T) {
	e := newTestEngine()
	s := store.NewSession("s1")

	// Detection collapses straight into collecting_info.
	res := step(t, e, s, "Create an NDA")
	if s.State != store.StateCollectingInfo {
		t.Fatalf("state = %q, want collecting_info", s.State)
	}
	if len(s.PendingFields) != 3 {
		t.Fatalf("pending = %v, want 3 fields", s.PendingFields)
	}
	if !strings.Contains(res.Reply, "Party A") {
		t.Errorf("reply should ask for the first field, got %q", res.Reply)
	}

	// Two labeled answers in one message.
	step(t, e, s, "party_a: Acme Corp, party_b: Beta LLC")
	if len(s.PendingFields) != 1 || s.PendingFields[0] != "effective_date" {
		t.Fatalf("pending = %v, want only effective_date", s.PendingFields)
	}

	// Premature generate is refused while fields are missing.
	res = step(t, e, s, "generate")
	if s.State != store.StateCollectingInfo {
		t.Fatalf("state = %q, want collecting_info after premature generate", s.State)
	}
	if !strings.Contains(res.Reply, "Effective Date") {
		t.Errorf("refusal should name the missing field, got %q", res.Reply)
	}

	// Single pending field takes the bare message as its value.
	step(t, e, s, "2026-01-31")
	if s.State != store.StateReadyToGenerate {
		t.Fatalf("state = %q, want ready_to_generate", s.State)
	}

	res = step(t, e, s, "generate")
	if s.State != store.StateDocumentGenerated {
		t.Fatalf("state = %q, want document_generated", s.State)
	}
	for _, want := range []string{"Acme Corp", "Beta LLC", "2026-01-31"} {
		if !strings.Contains(s.GeneratedDocument, want) {
			t.Errorf("generated document missing %q", want)
		}
	}
	if strings.Contains(s.GeneratedDocument, "{") {
		t.Errorf("generated document still has placeholders: %q", s.GeneratedDocument)
	}
	if res.SaveRequested {
		t.Error("generate must not request a save")
	}

	// Save is delegated to the caller, then confirmed.
	res = step(t, e, s, "save")
	if !res.SaveRequested {
		t.Fatal("save directive should set SaveRequested")
	}
	if s.State != store.StateDocumentGenerated {
		t.Fatalf("state = %q, must stay document_generated until confirmed", s.State)
	}

	e.ConfirmSaved(s, "doc-123")
	if s.State != store.StateDocumentSaved {
		t.Fatalf("state = %q, want document_saved", s.State)
	}
	if s.SavedDocumentID != "doc-123" {
		t.Errorf("SavedDocumentID = %q, want doc-123", s.SavedDocumentID)
	}
}

func TestSaveReplayIsNoOp(t *testing.T) {
	e := newTestEngine()
	s := store.NewSession("s1")
	s.State = store.StateDocumentSaved
	s.DocumentTitle = "Non-Disclosure Agreement - Acme Corp"
	s.SavedDocumentID = "doc-123"

	res := step(t, e, s, "save")
	if res.SaveRequested {
		t.Error("replayed save must not request another save")
	}
	if s.SavedDocumentID != "doc-123" || s.State != store.StateDocumentSaved {
		t.Error("replayed save mutated the session")
	}
	if !strings.Contains(res.Reply, "already saved") {
		t.Errorf("reply = %q, want already-saved notice", res.Reply)
	}
}

func TestNewRequestAfterSave(t *testing.T) {
	e := newTestEngine()
	s := store.NewSession("s1")
	s.State = store.StateDocumentSaved
	s.TemplateID = "tpl-nda"
	s.CollectedValues = map[string]string{"party_a": "Old"}
	s.SavedDocumentID = "doc-123"

	step(t, e, s, "Create an NDA")
	if s.State != store.StateCollectingInfo {
		t.Fatalf("state = %q, want a fresh collecting_info flow", s.State)
	}
	if len(s.CollectedValues) != 0 {
		t.Errorf("collected = %v, want previous draft discarded", s.CollectedValues)
	}
	if s.SavedDocumentID != "" {
		t.Error("stale saved id survived the new request")
	}
}

func TestResetFromEveryState(t *testing.T) {
	states := []store.State{
		store.StateIdle, store.StateCollectingInfo, store.StateReadyToGenerate,
		store.StateDocumentGenerated, store.StateDocumentSaved,
	}

	e := newTestEngine()
	for _, st := range states {
		s := store.NewSession("s1")
		s.State = st
		s.TemplateID = "tpl-nda"
		s.CollectedValues = map[string]string{"party_a": "Acme"}

		res := step(t, e, s, "reset")
		if s.State != store.StateIdle {
			t.Errorf("reset from %q left state %q", st, s.State)
		}
		if len(s.CollectedValues) != 0 {
			t.Errorf("reset from %q left collected values", st)
		}
		if res.SaveRequested {
			t.Errorf("reset from %q requested a save", st)
		}
	}
}

func TestNoMatchStaysIdle(t *testing.T) {
	e := newTestEngine()
	s := store.NewSession("s1")

	res := step(t, e, s, "what's the weather like")
	if !res.NoMatch {
		t.Error("expected NoMatch for unrelated input")
	}
	if s.State != store.StateIdle {
		t.Errorf("state = %q, want idle", s.State)
	}
}

func TestEditAfterGeneration(t *testing.T) {
	e := newTestEngine()
	s := store.NewSession("s1")

	step(t, e, s, "Create an NDA")
	step(t, e, s, "party_a: Acme Corp, party_b: Beta LLC, effective_date: 2026-01-31")
	step(t, e, s, "generate")
	if s.State != store.StateDocumentGenerated {
		t.Fatalf("state = %q, want document_generated", s.State)
	}

	// Editing a field reopens collection and discards the stale draft.
	step(t, e, s, "edit party_b")
	if s.State != store.StateCollectingInfo {
		t.Fatalf("state = %q, want collecting_info", s.State)
	}
	if s.GeneratedDocument != "" {
		t.Error("stale generated document survived the edit")
	}

	step(t, e, s, "Gamma Inc")
	if s.State != store.StateReadyToGenerate {
		t.Fatalf("state = %q, want ready_to_generate", s.State)
	}

	step(t, e, s, "generate")
	if !strings.Contains(s.GeneratedDocument, "Gamma Inc") {
		t.Errorf("regenerated document missing edited value: %q", s.GeneratedDocument)
	}
	if strings.Contains(s.GeneratedDocument, "Beta LLC") {
		t.Errorf("regenerated document kept the old value: %q", s.GeneratedDocument)
	}
}

func TestEditUnknownFieldAfterGeneration(t *testing.T) {
	e := newTestEngine()
	s := store.NewSession("s1")

	step(t, e, s, "Create an NDA")
	step(t, e, s, "party_a: Acme Corp, party_b: Beta LLC, effective_date: 2026-01-31")
	step(t, e, s, "generate")

	res := step(t, e, s, "edit signature_color")
	if s.State != store.StateDocumentGenerated {
		t.Fatalf("state = %q, unknown field must not change state", s.State)
	}
	if !strings.Contains(res.Reply, "signature_color") {
		t.Errorf("reply = %q, want unknown field named", res.Reply)
	}
}

func TestInvalidValueKeepsFieldPending(t *testing.T) {
	e := newTestEngine()
	s := store.NewSession("s1")

	step(t, e, s, "Create an NDA")
	step(t, e, s, "party_a: Acme Corp, party_b: Beta LLC")

	res := step(t, e, s, "effective_date: whenever works")
	if s.State != store.StateCollectingInfo {
		t.Fatalf("state = %q, want collecting_info", s.State)
	}
	if !s.IsPending("effective_date") {
		t.Error("rejected field must stay pending")
	}
	if !strings.Contains(res.Reply, "didn't look right") {
		t.Errorf("reply = %q, want validation feedback", res.Reply)
	}
}

func TestAmbiguousAnswerAsksForLabels(t *testing.T) {
	e := newTestEngine()
	s := store.NewSession("s1")

	step(t, e, s, "Create an NDA")

	res := step(t, e, s, "Acme Corp")
	if len(s.CollectedValues) != 0 {
		t.Errorf("collected = %v, want nothing from ambiguous input", s.CollectedValues)
	}
	if !strings.Contains(res.Reply, ":") {
		t.Errorf("reply = %q, want a labeled-input hint", res.Reply)
	}
}

func TestEditWhileReady(t *testing.T) {
	e := newTestEngine()
	s := store.NewSession("s1")

	step(t, e, s, "Create an NDA")
	step(t, e, s, "party_a: Acme Corp, party_b: Beta LLC, effective_date: 2026-01-31")
	if s.State != store.StateReadyToGenerate {
		t.Fatalf("state = %q, want ready_to_generate", s.State)
	}

	// A labeled correction updates in place without leaving ready.
	step(t, e, s, "party_b: Gamma Inc")
	if s.State != store.StateReadyToGenerate {
		t.Fatalf("state = %q, want ready_to_generate after in-place update", s.State)
	}
	if got := s.CollectedValues["party_b"]; got != "Gamma Inc" {
		t.Errorf("party_b = %q, want updated value", got)
	}

	// An invalid correction reopens collection for that field.
	step(t, e, s, "effective_date: someday")
	if s.State != store.StateCollectingInfo {
		t.Fatalf("state = %q, want collecting_info after invalid correction", s.State)
	}
	if !s.IsPending("effective_date") {
		t.Error("invalidated field must be pending again")
	}
}
