package service

import (
	"context"
	"fmt"
	"time"

	"ai-docdraft-be/internal/dto"
	"ai-docdraft-be/internal/entity"
	"ai-docdraft-be/internal/repository/specification"
	"ai-docdraft-be/internal/repository/unitofwork"
	"ai-docdraft-be/pkg/template"

	"github.com/google/uuid"
)

type ITemplateService interface {
	Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error)
	List(ctx context.Context, search string) (*dto.TemplateListResponse, error)
	Update(ctx context.Context, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Catalog exposes the active templates as read-only schemas for the
	// conversation engine.
	Catalog() template.Catalog
}

type templateService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTemplateService(uowFactory unitofwork.RepositoryFactory) ITemplateService {
	return &templateService{uowFactory: uowFactory}
}

func (s *templateService) Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category := req.Category
	if category == "" {
		category = "custom"
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	tpl := entity.Template{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		Category:    category,
		IsActive:    active,
		CreatedAt:   time.Now(),
	}

	if err := uow.TemplateRepository().Create(ctx, &tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(&tpl), nil
}

func (s *templateService) Show(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tpl, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("template not found")
	}
	return toTemplateResponse(tpl), nil
}

func (s *templateService) List(ctx context.Context, search string) (*dto.TemplateListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OrderBy{Field: "updated_at", Desc: true}}
	if search != "" {
		specs = append(specs, specification.SearchByText{Query: search})
	}

	templates, err := uow.TemplateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TemplateResponse, len(templates))
	for i, tpl := range templates {
		items[i] = toTemplateResponse(tpl)
	}
	return &dto.TemplateListResponse{Items: items, Total: int64(len(items))}, nil
}

func (s *templateService) Update(ctx context.Context, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tpl, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("template not found")
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Description != nil {
		tpl.Description = *req.Description
	}
	if req.Content != nil {
		tpl.Content = *req.Content
	}
	if req.Category != nil {
		tpl.Category = *req.Category
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}
	now := time.Now()
	tpl.UpdatedAt = &now

	if err := uow.TemplateRepository().Update(ctx, tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

func (s *templateService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.TemplateRepository().Delete(ctx, id)
}

func (s *templateService) Catalog() template.Catalog {
	return &repositoryCatalog{uowFactory: s.uowFactory}
}

func toTemplateResponse(tpl *entity.Template) *dto.TemplateResponse {
	schema := toSchema(tpl)
	return &dto.TemplateResponse{
		Id:          tpl.Id,
		Name:        tpl.Name,
		Description: tpl.Description,
		Content:     tpl.Content,
		Category:    tpl.Category,
		IsActive:    tpl.IsActive,
		Variables:   schema.VariableNames(),
		CreatedAt:   tpl.CreatedAt,
		UpdatedAt:   tpl.UpdatedAt,
	}
}

// repositoryCatalog adapts the template repository to the engine's read-only
// catalog contract, deriving each template's variable list from its skeleton.
type repositoryCatalog struct {
	uowFactory unitofwork.RepositoryFactory
}

func (c *repositoryCatalog) List(ctx context.Context) ([]*template.Schema, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	templates, err := uow.TemplateRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	schemas := make([]*template.Schema, len(templates))
	for i, tpl := range templates {
		schemas[i] = toSchema(tpl)
	}
	return schemas, nil
}

func (c *repositoryCatalog) Get(ctx context.Context, id string) (*template.Schema, error) {
	templateId, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid template id %q: %w", id, err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	tpl, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: templateId})
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("template %s not found", id)
	}
	return toSchema(tpl), nil
}

func toSchema(tpl *entity.Template) *template.Schema {
	text := template.ExtractText(tpl.Content)
	return &template.Schema{
		ID:          tpl.Id.String(),
		Name:        tpl.Name,
		Description: tpl.Description,
		Category:    tpl.Category,
		Content:     text,
		Variables:   template.ScanPlaceholders(text),
	}
}
