package template

import (
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain text passes through",
			content: "Hello {name}",
			want:    "Hello {name}",
		},
		{
			name:    "quill delta is flattened",
			content: `[{"insert":"Dear {client_name},"},{"insert":"\n"},{"insert":"Regards"}]`,
			want:    "Dear {client_name},\nRegards",
		},
		{
			name:    "non-string inserts are skipped",
			content: `[{"insert":{"image":"logo.png"}},{"insert":"body"}]`,
			want:    "body",
		},
		{
			name:    "invalid json passes through",
			content: `[{"insert": broken`,
			want:    `[{"insert": broken`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(tt.content); got != tt.want {
				t.Errorf("ExtractText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanPlaceholders(t *testing.T) {
	text := "Between {party_a} and {party_b} on [EFFECTIVE DATE] at <location>, {party_a} again for {total_amount}."
	vars := ScanPlaceholders(text)

	wantNames := []string{"party_a", "party_b", "total_amount", "effective_date", "location"}
	if len(vars) != len(wantNames) {
		t.Fatalf("got %d variables %v, want %d", len(vars), vars, len(wantNames))
	}

	byName := map[string]Variable{}
	for _, v := range vars {
		byName[v.Name] = v
	}
	for _, name := range wantNames {
		if _, ok := byName[name]; !ok {
			t.Errorf("missing variable %q", name)
		}
	}

	if byName["effective_date"].Kind != KindDate {
		t.Errorf("effective_date kind = %v, want date", byName["effective_date"].Kind)
	}
	if byName["total_amount"].Kind != KindNumber {
		t.Errorf("total_amount kind = %v, want number", byName["total_amount"].Kind)
	}
	if byName["party_a"].Kind != KindText {
		t.Errorf("party_a kind = %v, want text", byName["party_a"].Kind)
	}
}
