package template

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Stored template content may be a Quill delta (JSON list of insert ops) from
// the rich-text editor, or already plain text.

var (
	curlyPattern   = regexp.MustCompile(`\{+([a-zA-Z_][a-zA-Z0-9_ ]*)\}+`)
	bracketPattern = regexp.MustCompile(`\[([A-Za-z][A-Za-z0-9 _]+)\]`)
	anglePattern   = regexp.MustCompile(`<([a-zA-Z_][a-zA-Z0-9_]*)>`)
)

type quillOp struct {
	Insert any `json:"insert"`
}

// ExtractText flattens Quill delta content into plain text. Non-delta content
// is returned unchanged.
func ExtractText(content string) string {
	var ops []quillOp
	if err := json.Unmarshal([]byte(content), &ops); err != nil {
		return content
	}
	var b strings.Builder
	for _, op := range ops {
		if s, ok := op.Insert.(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return content
	}
	return b.String()
}

// ScanPlaceholders extracts the ordered, de-duplicated variable list from a
// plain-text skeleton. Recognized placeholder shapes: {field_name},
// {{field_name}}, [FIELD NAME], [Your Name], <field_name>.
func ScanPlaceholders(text string) []Variable {
	seen := map[string]bool{}
	var vars []Variable

	add := func(raw string) {
		name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_"))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		vars = append(vars, Variable{Name: name, Kind: InferKind(name)})
	}

	for _, m := range curlyPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range bracketPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range anglePattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	return vars
}
