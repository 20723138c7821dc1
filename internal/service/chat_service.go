package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ai-docdraft-be/internal/dto"
	"ai-docdraft-be/internal/repository/contract"
	"ai-docdraft-be/pkg/conversation/engine"
	"ai-docdraft-be/pkg/conversation/extract"
	"ai-docdraft-be/pkg/conversation/intent"
	"ai-docdraft-be/pkg/llm"
	"ai-docdraft-be/pkg/store"
	"ai-docdraft-be/pkg/template"

	"github.com/google/uuid"
)

// IChatService defines the conversational document-drafting interface
type IChatService interface {
	SendMessage(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	Reset(ctx context.Context, sessionId string) (*dto.SendChatResponse, error)
}

const (
	saveTimeout = 15 * time.Second
	llmTimeout  = 20 * time.Second
)

// chatService coordinates the conversation engine, the session store and the
// document store for one chat turn.
type chatService struct {
	sessionRepo     contract.SessionRepository
	documentService IDocumentService
	engine          *engine.Engine
	locker          *engine.SessionLocker
	llmProvider     llm.LLMProvider
	catalog         template.Catalog
	turnLogger      *log.Logger
}

// NewChatService wires the conversation engine and its collaborators.
// llmProvider may be nil; it only polishes fallback replies.
func NewChatService(
	sessionRepo contract.SessionRepository,
	documentService IDocumentService,
	catalog template.Catalog,
	llmProvider llm.LLMProvider,
) IChatService {
	turnLogger := initTurnLogger()
	matcher := intent.NewMatcher(catalog, turnLogger)
	extractor := extract.NewExtractor(turnLogger)

	return &chatService{
		sessionRepo:     sessionRepo,
		documentService: documentService,
		engine:          engine.New(catalog, matcher, extractor, turnLogger),
		locker:          engine.NewSessionLocker(),
		llmProvider:     llmProvider,
		catalog:         catalog,
		turnLogger:      turnLogger,
	}
}

func initTurnLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "conversation.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[CONVERSATION] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (s *chatService) SendMessage(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	// Turns within one session are strictly serialized; turns across
	// sessions are independent.
	s.locker.Lock(sessionId)
	defer s.locker.Unlock(sessionId)

	session, err := s.loadOrCreate(ctx, sessionId)
	if err != nil {
		return nil, &dto.TurnError{Message: "session store unavailable", Retryable: true, Err: err}
	}

	result, err := s.engine.Step(ctx, session, req.Message, req.TemplateId, req.Variables)
	if err != nil {
		// The engine leaves the session unchanged on upstream failure, so we
		// deliberately do not persist anything here.
		return nil, &dto.TurnError{Message: "could not process message", Retryable: true, Err: err}
	}

	if result.SaveRequested {
		result, err = s.saveDocument(ctx, session)
		if err != nil {
			return nil, err
		}
	}

	if result.NoMatch {
		result.Reply = s.polishFallback(ctx, req.Message, result.Reply)
	}

	session.UpdatedAt = time.Now()
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, &dto.TurnError{Message: "session store unavailable", Retryable: true, Err: err}
	}

	return toChatResponse(session, result.Reply), nil
}

func (s *chatService) Reset(ctx context.Context, sessionId string) (*dto.SendChatResponse, error) {
	s.locker.Lock(sessionId)
	defer s.locker.Unlock(sessionId)

	session := store.NewSession(sessionId)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, &dto.TurnError{Message: "session store unavailable", Retryable: true, Err: err}
	}
	return toChatResponse(session, "Conversation reset. How can I help you create a document today?"), nil
}

func (s *chatService) loadOrCreate(ctx context.Context, sessionId string) (*store.Session, error) {
	session, found, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		// Covers both brand-new sessions and sessions evicted after the idle
		// window; resuming after eviction behaves like a new conversation.
		session = store.NewSession(sessionId)
	}
	return session, nil
}

func (s *chatService) saveDocument(ctx context.Context, session *store.Session) (*engine.StepResult, error) {
	saveCtx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	doc, err := s.documentService.Create(saveCtx, &dto.CreateDocumentRequest{
		Title:        session.DocumentTitle,
		Content:      session.GeneratedDocument,
		TemplateId:   session.TemplateID,
		FilledValues: session.CollectedValues,
	})
	if err != nil {
		// State stays document_generated; replaying the save directive retries.
		return nil, &dto.TurnError{Message: "could not save document", Retryable: true, Err: err}
	}

	return s.engine.ConfirmSaved(session, doc.Id.String()), nil
}

// polishFallback asks the LLM for a friendlier no-match reply. Any failure or
// timeout falls back to the canned reply; session state is never touched.
func (s *chatService) polishFallback(ctx context.Context, message, canned string) string {
	if s.llmProvider == nil {
		return canned
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	schemas, err := s.catalog.List(llmCtx)
	if err != nil {
		return canned
	}
	names := ""
	for _, schema := range schemas {
		names += "- " + schema.Name + "\n"
	}

	prompt := fmt.Sprintf(
		"You are a document drafting assistant. The user said: %q.\n"+
			"No document template matched. Available templates:\n%s\n"+
			"Reply in one or two sentences guiding the user toward one of these templates. Do not invent templates.",
		message, names)

	reply, err := s.llmProvider.Generate(llmCtx, prompt, llm.WithTemperature(0.3))
	if err != nil || reply == "" {
		s.turnLogger.Printf("[WARN] Fallback reply generation failed: %v", err)
		return canned
	}
	return reply
}

func toChatResponse(session *store.Session, reply string) *dto.SendChatResponse {
	return &dto.SendChatResponse{
		SessionId:         session.ID,
		Reply:             reply,
		State:             session.State,
		TemplateId:        session.TemplateID,
		PendingFields:     session.PendingFields,
		CollectedValues:   session.CollectedValues,
		GeneratedDocument: session.GeneratedDocument,
		DocumentTitle:     session.DocumentTitle,
		DocumentSaved:     session.State == store.StateDocumentSaved,
		SavedDocumentId:   session.SavedDocumentID,
	}
}
