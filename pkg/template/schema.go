package template

import (
	"context"
	"strings"
)

// VariableKind classifies how a variable's value is validated.
type VariableKind string

const (
	KindText   VariableKind = "text"
	KindDate   VariableKind = "date"
	KindNumber VariableKind = "number"
)

// Variable is a single placeholder declared by a template skeleton.
type Variable struct {
	Name string       `json:"name"`
	Kind VariableKind `json:"kind"`
}

// Schema is the read-only view of one catalog template that the conversation
// engine works against.
type Schema struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Content     string     `json:"content"` // plain text skeleton
	Variables   []Variable `json:"variables"`
}

// VariableNames returns the declared variable names in skeleton order.
func (s *Schema) VariableNames() []string {
	names := make([]string, len(s.Variables))
	for i, v := range s.Variables {
		names[i] = v.Name
	}
	return names
}

// Variable looks up a declared variable by name.
func (s *Schema) Variable(name string) (Variable, bool) {
	for _, v := range s.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Catalog supplies template schemas to the conversation engine. Backed by the
// template repository in production and by fixtures in tests.
type Catalog interface {
	List(ctx context.Context) ([]*Schema, error)
	Get(ctx context.Context, id string) (*Schema, error)
}

// InferKind guesses a variable's kind from its name. Date and amount style
// names get stricter validation; everything else is free text.
func InferKind(name string) VariableKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "date"):
		return KindDate
	case strings.Contains(lower, "amount"), strings.Contains(lower, "price"),
		strings.Contains(lower, "sum"), strings.Contains(lower, "quantity"):
		return KindNumber
	default:
		return KindText
	}
}
