package directive

import "strings"

// Kind is the closed set of control directives a message can carry.
type Kind int

const (
	// None means the message is field content, not a control directive.
	None Kind = iota
	Reset
	Generate
	Save
	Edit
)

// Directive is a parsed control command. Target is set only for Edit.
type Directive struct {
	Kind   Kind
	Target string // field name for Edit
}

// Keyword sets are matched exactly against the whole trimmed, lowercased
// message. Anything less than an exact match is treated as field content,
// which keeps values like "please save the date for June" from being
// swallowed as commands.
var (
	resetKeywords = map[string]bool{
		"reset": true, "start over": true, "cancel": true, "new": true, "clear": true,
	}
	generateKeywords = map[string]bool{
		"generate": true, "generate document": true, "create document": true,
		"generate it": true, "go ahead": true, "confirm": true, "yes": true,
	}
	saveKeywords = map[string]bool{
		"save": true, "save it": true, "save document": true, "keep it": true,
	}
	editPrefixes = []string{"edit ", "change ", "update "}
)

// Parse classifies a message against the directive grammar.
func Parse(message string) Directive {
	normalized := strings.ToLower(strings.TrimSpace(message))

	switch {
	case resetKeywords[normalized]:
		return Directive{Kind: Reset}
	case generateKeywords[normalized]:
		return Directive{Kind: Generate}
	case saveKeywords[normalized]:
		return Directive{Kind: Save}
	}

	for _, prefix := range editPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			target := strings.TrimSpace(strings.TrimPrefix(normalized, prefix))
			target = strings.ReplaceAll(target, " ", "_")
			if target != "" {
				return Directive{Kind: Edit, Target: target}
			}
		}
	}

	return Directive{Kind: None}
}
