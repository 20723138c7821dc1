package extract

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ai-docdraft-be/pkg/template"
)

// Result carries the outcome of one extraction pass. Values holds accepted
// field values; Failures holds the constraint message for each value that was
// offered but rejected. Fields absent from both simply stay pending.
type Result struct {
	Values   map[string]string
	Failures map[string]string
}

// pairPattern matches one structured segment like "party_a: Acme Corp".
var pairPattern = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_ ]*?)\s*[:=]\s*(.+)$`)

var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
	"02-01-2006",
}

// Extractor resolves pending template variables from free text.
type Extractor struct {
	logger *log.Logger
}

// NewExtractor creates a new field extractor.
func NewExtractor(logger *log.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract attempts to resolve values for the pending fields from a message and
// any explicitly supplied variables. Disambiguation strategy: explicit
// variables win, then labeled "field: value" pairs. Only when exactly one
// field is pending the whole message is taken as that field's value.
// Unlabeled text with several fields pending resolves nothing.
func (e *Extractor) Extract(message string, pending []string, schema *template.Schema, explicit map[string]string) Result {
	res := Result{
		Values:   map[string]string{},
		Failures: map[string]string{},
	}

	for name, value := range explicit {
		field := matchField(name, pending)
		if field == "" {
			continue
		}
		e.accept(&res, schema, field, value)
	}

	for _, pair := range parsePairs(message) {
		field := matchField(pair[0], pending)
		if field == "" || res.Values[field] != "" {
			continue
		}
		e.accept(&res, schema, field, pair[1])
	}

	// Single-field shortcut: an unlabeled message can only be the answer when
	// there is nothing else it could belong to.
	if len(pending) == 1 && len(res.Values) == 0 && len(res.Failures) == 0 {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			e.accept(&res, schema, pending[0], trimmed)
		}
	}

	return res
}

// parsePairs splits a message on newlines and commas and collects labeled
// "field: value" pairs. A comma segment without its own label is folded back
// into the preceding value on the same line, which keeps answers like
// "effective_date: January 31, 2026" intact.
func parsePairs(message string) [][2]string {
	var pairs [][2]string
	for _, line := range strings.Split(message, "\n") {
		lineStart := len(pairs)
		for _, seg := range strings.Split(line, ",") {
			if m := pairPattern.FindStringSubmatch(seg); m != nil {
				pairs = append(pairs, [2]string{m[1], strings.TrimSpace(m[2])})
				continue
			}
			if len(pairs) > lineStart {
				if t := strings.TrimSpace(seg); t != "" {
					pairs[len(pairs)-1][1] += ", " + t
				}
			}
		}
	}
	return pairs
}

func (e *Extractor) accept(res *Result, schema *template.Schema, field, value string) {
	if err := Validate(schema, field, value); err != nil {
		res.Failures[field] = err.Error()
		e.logger.Printf("[EXTRACT] Rejected %s: %v", field, err)
		return
	}
	res.Values[field] = value
}

// Validate checks a candidate value against the field's declared kind.
func Validate(schema *template.Schema, field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s cannot be empty", FriendlyName(field))
	}

	v, ok := schema.Variable(field)
	if !ok {
		v = template.Variable{Name: field, Kind: template.InferKind(field)}
	}

	switch v.Kind {
	case template.KindDate:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, value); err == nil {
				return nil
			}
		}
		return fmt.Errorf("%s must be a date such as 2026-01-31 or January 31, 2026", FriendlyName(field))
	case template.KindNumber:
		cleaned := strings.NewReplacer(",", "", "$", "", "€", "", "£", "").Replace(value)
		if _, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64); err != nil {
			return fmt.Errorf("%s must be a number", FriendlyName(field))
		}
	}
	return nil
}

// FriendlyName turns snake_case field names into title-cased prose.
func FriendlyName(field string) string {
	words := strings.Split(strings.ReplaceAll(field, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// matchField maps a user-supplied label onto a pending field name, tolerating
// partial matches in either direction ("party" -> "party_a" is ambiguous and
// skipped; "party a" -> "party_a" is accepted).
func matchField(label string, pending []string) string {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), " ", "_"))
	if normalized == "" {
		return ""
	}

	var candidates []string
	for _, field := range pending {
		if field == normalized {
			return field
		}
		if strings.Contains(field, normalized) || strings.Contains(normalized, field) {
			candidates = append(candidates, field)
		}
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	return ""
}
