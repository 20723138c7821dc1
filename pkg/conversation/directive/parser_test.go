package directive

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantKind   Kind
		wantTarget string
	}{
		{name: "plain content", message: "Acme Corp", wantKind: None},
		{name: "reset", message: "reset", wantKind: Reset},
		{name: "start over", message: "Start Over", wantKind: Reset},
		{name: "cancel", message: "cancel", wantKind: Reset},
		{name: "generate", message: "generate", wantKind: Generate},
		{name: "generate with whitespace", message: "  Generate  ", wantKind: Generate},
		{name: "go ahead", message: "go ahead", wantKind: Generate},
		{name: "yes confirms generation", message: "yes", wantKind: Generate},
		{name: "save", message: "save", wantKind: Save},
		{name: "save it", message: "Save it", wantKind: Save},
		{name: "keep it", message: "keep it", wantKind: Save},
		{name: "edit field", message: "edit party_a", wantKind: Edit, wantTarget: "party_a"},
		{name: "edit spaced field", message: "edit party a", wantKind: Edit, wantTarget: "party_a"},
		{name: "change field", message: "change effective date", wantKind: Edit, wantTarget: "effective_date"},
		{name: "update field", message: "Update total_fee", wantKind: Edit, wantTarget: "total_fee"},
		{name: "bare edit is content", message: "edit ", wantKind: None},
		{name: "save inside a sentence is content", message: "please save the date for June", wantKind: None},
		{name: "generate inside a sentence is content", message: "we generate revenue quarterly", wantKind: None},
		{name: "new as whole message", message: "new", wantKind: Reset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.message)
			if got.Kind != tt.wantKind {
				t.Errorf("Parse(%q).Kind = %v, want %v", tt.message, got.Kind, tt.wantKind)
			}
			if got.Target != tt.wantTarget {
				t.Errorf("Parse(%q).Target = %q, want %q", tt.message, got.Target, tt.wantTarget)
			}
		})
	}
}
