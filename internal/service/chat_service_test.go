package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-docdraft-be/internal/dto"
	"ai-docdraft-be/internal/repository/memory"
	"ai-docdraft-be/pkg/store"
	"ai-docdraft-be/pkg/template"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	schemas []*template.Schema
}

func (c *stubCatalog) List(_ context.Context) ([]*template.Schema, error) {
	return c.schemas, nil
}

func (c *stubCatalog) Get(_ context.Context, id string) (*template.Schema, error) {
	for _, s := range c.schemas {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

type stubDocumentService struct {
	failNext bool
	created  []*dto.CreateDocumentRequest
}

func (s *stubDocumentService) Create(_ context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if s.failNext {
		s.failNext = false
		return nil, errors.New("db down")
	}
	s.created = append(s.created, req)
	return &dto.DocumentResponse{Id: uuid.New(), Title: req.Title, Content: req.Content}, nil
}

func (s *stubDocumentService) Show(_ context.Context, _ uuid.UUID) (*dto.DocumentResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubDocumentService) List(_ context.Context) ([]*dto.DocumentResponse, error) {
	return nil, nil
}

func (s *stubDocumentService) Update(_ context.Context, _ *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubDocumentService) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func newChatFixture() (IChatService, *stubDocumentService) {
	content := "NDA between {party_a} and {party_b}, effective {effective_date}."
	catalog := &stubCatalog{schemas: []*template.Schema{{
		ID:          "tpl-nda",
		Name:        "Non-Disclosure Agreement",
		Description: "Mutual NDA between two parties",
		Content:     content,
		Variables:   template.ScanPlaceholders(content),
	}}}
	docs := &stubDocumentService{}
	svc := NewChatService(memory.NewSessionRepository(time.Hour), docs, catalog, nil)
	return svc, docs
}

func send(t *testing.T, svc IChatService, sessionId, message string) *dto.SendChatResponse {
	t.Helper()
	res, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{SessionId: sessionId, Message: message})
	require.NoError(t, err)
	return res
}

func TestSendMessageFullFlow(t *testing.T) {
	svc, docs := newChatFixture()

	res := send(t, svc, "", "Create an NDA")
	require.NotEmpty(t, res.SessionId, "a session id must be minted for the first turn")
	assert.Equal(t, store.StateCollectingInfo, res.State)
	assert.Len(t, res.PendingFields, 3)

	sessionId := res.SessionId
	res = send(t, svc, sessionId, "party_a: Acme Corp, party_b: Beta LLC, effective_date: 2026-01-31")
	assert.Equal(t, store.StateReadyToGenerate, res.State)
	assert.Empty(t, res.PendingFields)

	res = send(t, svc, sessionId, "generate")
	assert.Equal(t, store.StateDocumentGenerated, res.State)
	assert.Contains(t, res.GeneratedDocument, "Acme Corp")

	res = send(t, svc, sessionId, "save")
	assert.Equal(t, store.StateDocumentSaved, res.State)
	assert.True(t, res.DocumentSaved)
	assert.NotEmpty(t, res.SavedDocumentId)
	require.Len(t, docs.created, 1)
	assert.Equal(t, "Non-Disclosure Agreement - Acme Corp", docs.created[0].Title)
	assert.Equal(t, "tpl-nda", docs.created[0].TemplateId)

	// Replayed save must not create a second document.
	res = send(t, svc, sessionId, "save")
	assert.Len(t, docs.created, 1)
	assert.Contains(t, res.Reply, "already saved")
}

func TestSendMessageSaveFailureIsRetryable(t *testing.T) {
	svc, docs := newChatFixture()

	res := send(t, svc, "", "Create an NDA")
	sessionId := res.SessionId
	send(t, svc, sessionId, "party_a: Acme Corp, party_b: Beta LLC, effective_date: 2026-01-31")
	send(t, svc, sessionId, "generate")

	docs.failNext = true
	_, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{SessionId: sessionId, Message: "save"})
	require.Error(t, err)

	var turnErr *dto.TurnError
	require.ErrorAs(t, err, &turnErr)
	assert.True(t, turnErr.Retryable)

	// The draft survived the failure; replaying the directive saves it.
	res = send(t, svc, sessionId, "save")
	assert.Equal(t, store.StateDocumentSaved, res.State)
	assert.Len(t, docs.created, 1)
}

func TestSendMessageNoMatchWithoutLLM(t *testing.T) {
	svc, _ := newChatFixture()

	res := send(t, svc, "", "what's the weather like today")
	assert.Equal(t, store.StateIdle, res.State)
	assert.NotEmpty(t, res.Reply, "the canned fallback must be returned when no LLM is wired")
}

func TestReset(t *testing.T) {
	svc, _ := newChatFixture()

	res := send(t, svc, "", "Create an NDA")
	sessionId := res.SessionId

	reset, err := svc.Reset(context.Background(), sessionId)
	require.NoError(t, err)
	assert.Equal(t, store.StateIdle, reset.State)
	assert.Empty(t, reset.CollectedValues)

	// The stored session really is back to idle.
	res = send(t, svc, sessionId, "what's the weather like today")
	assert.Equal(t, store.StateIdle, res.State)
}
