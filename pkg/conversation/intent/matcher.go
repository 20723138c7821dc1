package intent

import (
	"context"
	"log"
	"strings"

	"ai-docdraft-be/pkg/template"
)

// Match is the outcome of intent detection: the selected template and the
// score it won with. A nil match is a normal outcome, not an error.
type Match struct {
	Schema *template.Schema
	Score  int
}

// minScore is the confidence floor; anything below it is treated as no match.
const minScore = 30

// creationKeywords signal that the user wants to produce a document at all.
// Their presence boosts every candidate's score.
var creationKeywords = []string{
	"create", "make", "generate", "draft", "write", "prepare",
	"need", "want", "help me with", "can you", "let's", "lets",
}

// aliasGroups are synonym sets for document kinds. A group contributes when
// the template name mentions any member and the prompt mentions any member,
// so "create an NDA" reaches a template named "Non-Disclosure Agreement".
var aliasGroups = [][]string{
	{"nda", "non-disclosure", "non disclosure", "confidentiality",
		"confidential agreement", "secrecy agreement"},
	{"contract", "agreement", "deal", "terms"},
	{"invoice", "bill", "billing", "payment"},
	{"letter", "correspondence", "mail"},
	{"proposal", "offer", "pitch", "quotation"},
	{"resume", "cv", "curriculum vitae"},
	{"employment", "job", "hiring", "offer letter"},
}

// Matcher scores free text against the template catalog to detect which
// document the user wants.
type Matcher struct {
	catalog template.Catalog
	logger  *log.Logger
}

// NewMatcher creates a new intent matcher.
func NewMatcher(catalog template.Catalog, logger *log.Logger) *Matcher {
	return &Matcher{catalog: catalog, logger: logger}
}

// MatchText returns the single highest-confidence template for the message, or
// nil when no candidate clears the confidence floor. Unmatched input never
// produces an error; catalog access failures do.
func (m *Matcher) MatchText(ctx context.Context, message string) (*Match, error) {
	schemas, err := m.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	prompt := strings.ToLower(message)
	hasCreationIntent := false
	for _, kw := range creationKeywords {
		if strings.Contains(prompt, kw) {
			hasCreationIntent = true
			break
		}
	}

	var best *Match
	for _, schema := range schemas {
		score := scoreTemplate(prompt, schema, hasCreationIntent)
		if best == nil || score > best.Score {
			best = &Match{Schema: schema, Score: score}
		}
	}

	if best == nil || best.Score < minScore {
		return nil, nil
	}

	m.logger.Printf("[INTENT] Matched template %q (score %d)", best.Schema.Name, best.Score)
	return best, nil
}

func scoreTemplate(prompt string, schema *template.Schema, creationIntent bool) int {
	score := 0
	name := strings.ToLower(schema.Name)
	desc := strings.ToLower(schema.Description)

	// Direct name match dominates everything else
	if strings.Contains(prompt, name) {
		score += 100
	}

	for _, word := range strings.Fields(name) {
		if len(word) > 2 && strings.Contains(prompt, word) {
			score += 30
		}
	}

	for _, word := range strings.Fields(desc) {
		if len(word) > 3 && strings.Contains(prompt, word) {
			score += 10
		}
	}

	for _, group := range aliasGroups {
		nameHit := false
		for _, term := range group {
			if strings.Contains(name, term) {
				nameHit = true
				break
			}
		}
		if !nameHit {
			continue
		}
		for _, term := range group {
			if strings.Contains(prompt, term) {
				score += 50
				break
			}
		}
	}

	if creationIntent && score > 0 {
		score = score * 3 / 2
	}
	return score
}
