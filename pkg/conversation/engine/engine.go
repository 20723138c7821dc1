package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-docdraft-be/pkg/conversation/directive"
	"ai-docdraft-be/pkg/conversation/extract"
	"ai-docdraft-be/pkg/conversation/intent"
	"ai-docdraft-be/pkg/conversation/render"
	"ai-docdraft-be/pkg/store"
	"ai-docdraft-be/pkg/template"
)

// StepResult is the outcome of processing one inbound message. The session is
// mutated in place; SaveRequested signals the caller to persist the generated
// document and then confirm via ConfirmSaved.
type StepResult struct {
	Reply         string
	SaveRequested bool
	NoMatch       bool // idle message that matched no template
}

// Engine runs the per-session document-drafting state machine. Step is a pure
// function of (session, message, catalog): it has no side effects beyond
// mutating the single session it was invoked for. Upstream failures (catalog
// lookups) surface as errors and leave the session unchanged, so resubmitting
// the same message is always safe.
type Engine struct {
	catalog   template.Catalog
	matcher   *intent.Matcher
	extractor *extract.Extractor
	logger    *log.Logger
}

// New creates a conversation engine wired to the template catalog.
func New(catalog template.Catalog, matcher *intent.Matcher, extractor *extract.Extractor, logger *log.Logger) *Engine {
	return &Engine{
		catalog:   catalog,
		matcher:   matcher,
		extractor: extractor,
		logger:    logger,
	}
}

// Step processes one chat turn. explicitTemplateID and variables come from the
// structured request fields and take precedence over free-text inference.
func (e *Engine) Step(ctx context.Context, session *store.Session, message, explicitTemplateID string, variables map[string]string) (*StepResult, error) {
	cmd := directive.Parse(message)

	if cmd.Kind == directive.Reset {
		session.Reset()
		return &StepResult{Reply: "Conversation reset. How can I help you create a document today?"}, nil
	}

	switch session.State {
	case store.StateIdle:
		return e.stepIdle(ctx, session, message, explicitTemplateID)
	case store.StateTemplateDetected:
		return e.advanceFromTemplate(ctx, session)
	case store.StateCollectingInfo:
		return e.stepCollecting(ctx, session, message, cmd, variables)
	case store.StateReadyToGenerate:
		return e.stepReady(ctx, session, message, cmd, variables)
	case store.StateDocumentGenerated:
		return e.stepGenerated(ctx, session, cmd)
	case store.StateDocumentSaved:
		return e.stepSaved(ctx, session, message, explicitTemplateID, cmd)
	default:
		return nil, fmt.Errorf("engine: session %s in unknown state %q", session.ID, session.State)
	}
}

// ConfirmSaved records a successful document persistence and moves the session
// to its resting state. Called by the owner of the document store after a
// SaveRequested result.
func (e *Engine) ConfirmSaved(session *store.Session, documentID string) *StepResult {
	session.State = store.StateDocumentSaved
	session.SavedDocumentID = documentID
	e.logger.Printf("[STATE] Session %s transitioned to DOCUMENT_SAVED (doc %s)", session.ID, documentID)
	return &StepResult{Reply: fmt.Sprintf("Document %q has been saved. Start a new request whenever you like, or say reset.", session.DocumentTitle)}
}

func (e *Engine) stepIdle(ctx context.Context, session *store.Session, message, explicitTemplateID string) (*StepResult, error) {
	schema, err := e.resolveTemplate(ctx, message, explicitTemplateID)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		// NoMatch is a normal outcome; state stays idle.
		return &StepResult{
			Reply:   "I can help you draft documents from your templates. Tell me what you need, for example: create an NDA.",
			NoMatch: true,
		}, nil
	}

	session.TemplateID = schema.ID
	session.State = store.StateTemplateDetected
	e.logger.Printf("[STATE] Session %s transitioned to TEMPLATE_DETECTED: %s", session.ID, schema.Name)

	// template_detected is transient: compute the field checklist in the same
	// turn so the user is asked for the first value immediately.
	return e.advanceFromTemplate(ctx, session)
}

func (e *Engine) advanceFromTemplate(ctx context.Context, session *store.Session) (*StepResult, error) {
	schema, err := e.catalog.Get(ctx, session.TemplateID)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, v := range schema.Variables {
		if _, ok := session.CollectedValues[v.Name]; !ok {
			pending = append(pending, v.Name)
		}
	}

	if len(pending) == 0 {
		session.PendingFields = []string{}
		session.State = store.StateReadyToGenerate
		e.logger.Printf("[STATE] Session %s transitioned to READY_TO_GENERATE", session.ID)
		return &StepResult{Reply: fmt.Sprintf("All details for the %s are in place. Say generate to create the document.", schema.Name)}, nil
	}

	session.PendingFields = pending
	session.State = store.StateCollectingInfo
	e.logger.Printf("[STATE] Session %s transitioned to COLLECTING_INFO: %d fields", session.ID, len(pending))

	reply := fmt.Sprintf("Let's draft a %s. I need %d detail(s) from you.\n%s",
		schema.Name, len(pending), fieldQuestion(pending[0], len(pending)))
	return &StepResult{Reply: reply}, nil
}

func (e *Engine) stepCollecting(ctx context.Context, session *store.Session, message string, cmd directive.Directive, variables map[string]string) (*StepResult, error) {
	schema, err := e.catalog.Get(ctx, session.TemplateID)
	if err != nil {
		return nil, err
	}

	switch cmd.Kind {
	case directive.Generate:
		return &StepResult{Reply: fmt.Sprintf("Not yet. I still need: %s.", friendlyList(session.PendingFields))}, nil
	case directive.Edit:
		if _, ok := schema.Variable(cmd.Target); ok {
			session.ClearValue(cmd.Target)
			return &StepResult{Reply: fieldQuestion(cmd.Target, len(session.PendingFields))}, nil
		}
	}

	res := e.extractor.Extract(message, session.PendingFields, schema, variables)
	for field, value := range res.Values {
		session.CollectValue(field, value)
	}

	if len(res.Failures) > 0 {
		var parts []string
		for _, msg := range res.Failures {
			parts = append(parts, msg)
		}
		return &StepResult{Reply: "That didn't look right: " + strings.Join(parts, "; ") + ". Please try again."}, nil
	}

	if len(session.PendingFields) == 0 {
		session.State = store.StateReadyToGenerate
		e.logger.Printf("[STATE] Session %s transitioned to READY_TO_GENERATE", session.ID)
		return &StepResult{Reply: fmt.Sprintf("Great, that's everything for the %s. Say generate to create the document.", schema.Name)}, nil
	}

	if len(res.Values) == 0 {
		// Nothing resolved: with several fields pending, unlabeled text is
		// ambiguous, so ask for labeled input instead of guessing.
		return &StepResult{Reply: fmt.Sprintf(
			"I couldn't tell which field that was for. Still needed: %s. You can answer like \"%s: <value>\".",
			friendlyList(session.PendingFields), session.PendingFields[0])}, nil
	}

	return &StepResult{Reply: fieldQuestion(session.PendingFields[0], len(session.PendingFields))}, nil
}

func (e *Engine) stepReady(ctx context.Context, session *store.Session, message string, cmd directive.Directive, variables map[string]string) (*StepResult, error) {
	schema, err := e.catalog.Get(ctx, session.TemplateID)
	if err != nil {
		return nil, err
	}

	switch cmd.Kind {
	case directive.Generate:
		return e.generate(session, schema)
	case directive.Edit:
		if _, ok := schema.Variable(cmd.Target); ok {
			session.ClearValue(cmd.Target)
			session.State = store.StateCollectingInfo
			e.logger.Printf("[STATE] Session %s transitioned to COLLECTING_INFO (edit %s)", session.ID, cmd.Target)
			return &StepResult{Reply: fieldQuestion(cmd.Target, len(session.PendingFields))}, nil
		}
	}

	// Any other message is treated as an edit of a previously collected value.
	updated, invalidated := e.applyEdits(session, schema, message, variables)
	if invalidated != "" {
		session.ClearValue(invalidated)
		session.State = store.StateCollectingInfo
		e.logger.Printf("[STATE] Session %s transitioned to COLLECTING_INFO (invalidated %s)", session.ID, invalidated)
		return &StepResult{Reply: fieldQuestion(invalidated, len(session.PendingFields))}, nil
	}
	if len(updated) > 0 {
		return &StepResult{Reply: fmt.Sprintf("Updated %s. Say generate when you're ready.", friendlyList(updated))}, nil
	}
	return &StepResult{Reply: "Everything is collected. Say generate to create the document, or edit <field> to change a value."}, nil
}

func (e *Engine) stepGenerated(ctx context.Context, session *store.Session, cmd directive.Directive) (*StepResult, error) {
	schema, err := e.catalog.Get(ctx, session.TemplateID)
	if err != nil {
		return nil, err
	}

	switch cmd.Kind {
	case directive.Save:
		return &StepResult{SaveRequested: true}, nil
	case directive.Generate:
		return e.generate(session, schema)
	case directive.Edit:
		if _, ok := schema.Variable(cmd.Target); ok {
			session.ClearValue(cmd.Target)
			session.GeneratedDocument = ""
			session.DocumentTitle = ""
			session.State = store.StateCollectingInfo
			e.logger.Printf("[STATE] Session %s transitioned to COLLECTING_INFO (edit %s)", session.ID, cmd.Target)
			return &StepResult{Reply: fieldQuestion(cmd.Target, len(session.PendingFields))}, nil
		}
		return &StepResult{Reply: fmt.Sprintf("There is no %q field in this document. Editable fields: %s.", cmd.Target, friendlyList(schema.VariableNames()))}, nil
	}

	return &StepResult{Reply: "Your document is ready. Say save to keep it, edit <field> to change a value, or generate to rebuild it."}, nil
}

func (e *Engine) stepSaved(ctx context.Context, session *store.Session, message, explicitTemplateID string, cmd directive.Directive) (*StepResult, error) {
	// Replaying the save directive after a save is a deliberate no-op.
	if cmd.Kind == directive.Save {
		return &StepResult{Reply: fmt.Sprintf("Document %q is already saved.", session.DocumentTitle)}, nil
	}

	// A new request restarts from idle semantics on the same session id.
	session.Reset()
	return e.stepIdle(ctx, session, message, explicitTemplateID)
}

func (e *Engine) generate(session *store.Session, schema *template.Schema) (*StepResult, error) {
	content, title, err := render.Render(schema, session.CollectedValues)
	if err != nil {
		// A missing variable here is a broken state machine, not user input.
		e.logger.Printf("[FATAL] Render contract violation for session %s: %v", session.ID, err)
		return nil, err
	}

	session.GeneratedDocument = content
	session.DocumentTitle = title
	session.State = store.StateDocumentGenerated
	e.logger.Printf("[STATE] Session %s transitioned to DOCUMENT_GENERATED: %s", session.ID, title)

	reply := fmt.Sprintf("Here is your %s:\n\n%s\n\nSay save to keep it, or edit <field> to change a value.", title, content)
	return &StepResult{Reply: reply}, nil
}

// applyEdits updates already-collected values from labeled pairs or explicit
// variables. Returns the updated field names, plus the name of a field whose
// offered replacement failed validation (which re-opens collection).
func (e *Engine) applyEdits(session *store.Session, schema *template.Schema, message string, variables map[string]string) ([]string, string) {
	res := e.extractor.Extract(message, schema.VariableNames(), schema, variables)

	for field := range res.Failures {
		if _, collected := session.CollectedValues[field]; collected {
			return nil, field
		}
	}

	var updated []string
	for field, value := range res.Values {
		if _, collected := session.CollectedValues[field]; collected {
			session.CollectedValues[field] = value
			updated = append(updated, field)
		}
	}
	return updated, ""
}

func (e *Engine) resolveTemplate(ctx context.Context, message, explicitTemplateID string) (*template.Schema, error) {
	if explicitTemplateID != "" {
		return e.catalog.Get(ctx, explicitTemplateID)
	}
	match, err := e.matcher.MatchText(ctx, message)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, nil
	}
	return match.Schema, nil
}

func fieldQuestion(field string, remaining int) string {
	if remaining > 1 {
		return fmt.Sprintf("What is the **%s**? (%d fields remaining)", extract.FriendlyName(field), remaining)
	}
	return fmt.Sprintf("What is the **%s**? (last field!)", extract.FriendlyName(field))
}

func friendlyList(fields []string) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = extract.FriendlyName(f)
	}
	return strings.Join(names, ", ")
}
