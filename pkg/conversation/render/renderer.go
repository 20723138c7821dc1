package render

import (
	"fmt"
	"strings"

	"ai-docdraft-be/pkg/template"
)

// ErrMissingVariable reports a contract violation: rendering was requested
// while at least one template variable had no collected value. The engine
// guarantees this cannot happen on any user-driven path.
type ErrMissingVariable struct {
	Field string
}

func (e *ErrMissingVariable) Error() string {
	return fmt.Sprintf("render: no value collected for variable %q", e.Field)
}

// titleFields are tried in order when deriving a document title; the first
// collected one distinguishes this document from others of the same template.
var titleFields = []string{"party_a", "company_name", "client_name", "your_name", "recipient_name"}

// Render substitutes every placeholder occurrence in the template skeleton
// with its collected value and derives a title. Every declared variable must
// have a value.
func Render(schema *template.Schema, values map[string]string) (string, string, error) {
	for _, v := range schema.Variables {
		if _, ok := values[v.Name]; !ok {
			return "", "", &ErrMissingVariable{Field: v.Name}
		}
	}

	text := template.ExtractText(schema.Content)
	for field, value := range values {
		spaced := strings.ReplaceAll(field, "_", " ")
		patterns := []string{
			"{" + field + "}",
			"{{" + field + "}}",
			"{" + spaced + "}",
			"{" + strings.ToUpper(field) + "}",
			"[" + field + "]",
			"[" + titleCase(spaced) + "]",
			"[" + strings.ToUpper(field) + "]",
			"[" + strings.ToUpper(spaced) + "]",
			"<" + field + ">",
		}
		for _, p := range patterns {
			text = strings.ReplaceAll(text, p, value)
		}
	}

	return text, deriveTitle(schema, values), nil
}

func deriveTitle(schema *template.Schema, values map[string]string) string {
	for _, field := range titleFields {
		if v := values[field]; v != "" {
			return schema.Name + " - " + v
		}
	}
	// Fall back to the first declared variable that has a value, then to the
	// bare template name.
	for _, v := range schema.Variables {
		if val := values[v.Name]; val != "" {
			return schema.Name + " - " + val
		}
	}
	return schema.Name
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
