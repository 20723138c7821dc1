package intent

import (
	"context"
	"io"
	"log"
	"testing"

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

func testCatalog() *stubCatalog {
	return &stubCatalog{schemas: []*template.Schema{
		{
			ID:          "tpl-nda",
			Name:        "Non-Disclosure Agreement",
			Description: "Mutual NDA between two parties protecting confidential information",
		},
		{
			ID:          "tpl-svc",
			Name:        "Service Agreement",
			Description: "Contract for professional services between a client and a provider",
		},
		{
			ID:          "tpl-inv",
			Name:        "Invoice",
			Description: "Simple invoice for billing a customer for goods or services",
		},
	}}
}

func newTestMatcher() *Matcher {
	return NewMatcher(testCatalog(), log.New(io.Discard, "", 0))
}

func TestMatchText(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantID  string // empty means no match
	}{
		{name: "abbreviation", message: "Create an NDA", wantID: "tpl-nda"},
		{name: "full name", message: "I need a non-disclosure agreement", wantID: "tpl-nda"},
		{name: "alias phrase", message: "draft a confidentiality agreement for us", wantID: "tpl-nda"},
		{name: "service agreement", message: "prepare a service agreement", wantID: "tpl-svc"},
		{name: "invoice alias", message: "I want to bill a customer", wantID: "tpl-inv"},
		{name: "unrelated chit-chat", message: "what's the weather like today", wantID: ""},
		{name: "empty message", message: "", wantID: ""},
	}

	m := newTestMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := m.MatchText(context.Background(), tt.message)
			if err != nil {
				t.Fatalf("MatchText(%q) error: %v", tt.message, err)
			}
			if tt.wantID == "" {
				if match != nil {
					t.Fatalf("MatchText(%q) = %q (score %d), want no match", tt.message, match.Schema.Name, match.Score)
				}
				return
			}
			if match == nil {
				t.Fatalf("MatchText(%q) = nil, want %s", tt.message, tt.wantID)
			}
			if match.Schema.ID != tt.wantID {
				t.Errorf("MatchText(%q) = %s (score %d), want %s", tt.message, match.Schema.ID, match.Score, tt.wantID)
			}
		})
	}
}

func TestCreationIntentBoost(t *testing.T) {
	m := newTestMatcher()

	with, err := m.MatchText(context.Background(), "create an invoice")
	if err != nil || with == nil {
		t.Fatalf("expected a match, got %v, %v", with, err)
	}
	without, err := m.MatchText(context.Background(), "invoice")
	if err != nil || without == nil {
		t.Fatalf("expected a match, got %v, %v", without, err)
	}
	if with.Score <= without.Score {
		t.Errorf("creation phrasing should outscore the bare noun: %d <= %d", with.Score, without.Score)
	}
}
