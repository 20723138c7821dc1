package render

import (
	"errors"
	"strings"
	"testing"

	"ai-docdraft-be/pkg/template"
)

func ndaSchema() *template.Schema {
	content := "NON-DISCLOSURE AGREEMENT\n\nBetween {party_a} and {party_b}, effective {effective_date}."
	return &template.Schema{
		ID:        "tpl-nda",
		Name:      "Non-Disclosure Agreement",
		Content:   content,
		Variables: template.ScanPlaceholders(content),
	}
}

func TestRenderSubstitutesAllPlaceholders(t *testing.T) {
	values := map[string]string{
		"party_a":        "Acme Corp",
		"party_b":        "Beta LLC",
		"effective_date": "2026-01-31",
	}

	content, title, err := Render(ndaSchema(), values)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if strings.Contains(content, "{") || strings.Contains(content, "}") {
		t.Errorf("rendered content still has placeholders: %q", content)
	}
	for _, v := range values {
		if !strings.Contains(content, v) {
			t.Errorf("rendered content missing value %q", v)
		}
	}
	if title != "Non-Disclosure Agreement - Acme Corp" {
		t.Errorf("title = %q, want party_a-derived title", title)
	}
}

func TestRenderPlaceholderShapes(t *testing.T) {
	content := "To [CANDIDATE NAME] from <company_name>, salary {{salary}}."
	schema := &template.Schema{
		ID:        "tpl-offer",
		Name:      "Offer Letter",
		Content:   content,
		Variables: template.ScanPlaceholders(content),
	}

	out, _, err := Render(schema, map[string]string{
		"candidate_name": "Jordan Lee",
		"company_name":   "Acme Corp",
		"salary":         "90000",
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	for _, want := range []string{"Jordan Lee", "Acme Corp", "90000"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered content missing %q: %q", want, out)
		}
	}
}

func TestRenderMissingVariable(t *testing.T) {
	_, _, err := Render(ndaSchema(), map[string]string{"party_a": "Acme Corp"})
	if err == nil {
		t.Fatal("expected error for missing variables")
	}
	var missing *ErrMissingVariable
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want ErrMissingVariable", err)
	}
}

func TestDeriveTitleFallsBackToTemplateName(t *testing.T) {
	content := "Ref: {reference}"
	schema := &template.Schema{
		ID:        "tpl-memo",
		Name:      "Memo",
		Content:   content,
		Variables: template.ScanPlaceholders(content),
	}

	_, title, err := Render(schema, map[string]string{"reference": "Q3 budget"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if title != "Memo - Q3 budget" {
		t.Errorf("title = %q, want first collected variable as suffix", title)
	}
}
