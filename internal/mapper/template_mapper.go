package mapper

import (
	"time"

	"ai-docdraft-be/internal/entity"
	"ai-docdraft-be/internal/model"
)

type TemplateMapper struct{}

func NewTemplateMapper() *TemplateMapper {
	return &TemplateMapper{}
}

func (m *TemplateMapper) ToEntity(t *model.Template) *entity.Template {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		ts := t.DeletedAt.Time
		deletedAt = &ts
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	return &entity.Template{
		Id:          t.Id,
		Name:        t.Name,
		Description: t.Description,
		Content:     t.Content,
		Category:    t.Category,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   t.DeletedAt.Valid,
	}
}

func (m *TemplateMapper) ToModel(t *entity.Template) *model.Template {
	if t == nil {
		return nil
	}

	out := &model.Template{
		Id:          t.Id,
		Name:        t.Name,
		Description: t.Description,
		Content:     t.Content,
		Category:    t.Category,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
	if t.UpdatedAt != nil {
		out.UpdatedAt = *t.UpdatedAt
	}
	return out
}

func (m *TemplateMapper) ToEntities(models []*model.Template) []*entity.Template {
	entities := make([]*entity.Template, len(models))
	for i, t := range models {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
