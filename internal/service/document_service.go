package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-docdraft-be/internal/dto"
	"ai-docdraft-be/internal/entity"
	"ai-docdraft-be/internal/pkg/logger"
	"ai-docdraft-be/internal/repository/specification"
	"ai-docdraft-be/internal/repository/unitofwork"
	"ai-docdraft-be/pkg/events"
	pktNats "ai-docdraft-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentResponse, error)
	Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	sysLogger        logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		sysLogger:        sysLogger,
	}
}

func (s *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc := entity.Document{
		Id:           uuid.New(),
		Title:        req.Title,
		Content:      req.Content,
		FilledValues: req.FilledValues,
		CreatedAt:    time.Now(),
	}

	if req.TemplateId != "" {
		templateId, err := uuid.Parse(req.TemplateId)
		if err != nil {
			return nil, fmt.Errorf("invalid template id %q: %w", req.TemplateId, err)
		}
		tpl, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: templateId})
		if err != nil {
			return nil, err
		}
		if tpl != nil {
			doc.TemplateId = &tpl.Id
			doc.TemplateName = tpl.Name
		}
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishDocumentSavedMessage{DocumentId: doc.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	// Publish Event for cross-instance consumers
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "DOCUMENT_SAVED",
			Data: map[string]interface{}{
				"title":       doc.Title,
				"document_id": doc.Id,
			},
			OccurredAt: time.Now(),
		}
		// Log but don't fail the request; the event bus is auxiliary
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.sysLogger.Warn("document", "Failed to publish DOCUMENT_SAVED event", map[string]interface{}{
				"document_id": doc.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	s.sysLogger.Info("document", "Document saved", map[string]interface{}{
		"document_id":   doc.Id.String(),
		"template_name": doc.TemplateName,
	})

	return toDocumentResponse(&doc), nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document not found")
	}
	return toDocumentResponse(doc), nil
}

func (s *documentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		out[i] = toDocumentResponse(doc)
	}
	return out, nil
}

func (s *documentService) Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document not found")
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}
	if req.FilledValues != nil {
		doc.FilledValues = req.FilledValues
	}
	now := time.Now()
	doc.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().Delete(ctx, id)
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:           doc.Id,
		Title:        doc.Title,
		Content:      doc.Content,
		TemplateId:   doc.TemplateId,
		TemplateName: doc.TemplateName,
		FilledValues: doc.FilledValues,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
