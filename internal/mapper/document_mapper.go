package mapper

import (
	"fmt"
	"time"

	"ai-docdraft-be/internal/entity"
	"ai-docdraft-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		ts := d.DeletedAt.Time
		deletedAt = &ts
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		ts := d.UpdatedAt
		updatedAt = &ts
	}

	values := make(map[string]string, len(d.FilledValues))
	for k, v := range d.FilledValues {
		values[k] = fmt.Sprintf("%v", v)
	}

	return &entity.Document{
		Id:           d.Id,
		Title:        d.Title,
		Content:      d.Content,
		TemplateId:   d.TemplateId,
		TemplateName: d.TemplateName,
		FilledValues: values,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	values := datatypes.JSONMap{}
	for k, v := range d.FilledValues {
		values[k] = v
	}

	out := &model.Document{
		Id:           d.Id,
		Title:        d.Title,
		Content:      d.Content,
		TemplateId:   d.TemplateId,
		TemplateName: d.TemplateName,
		FilledValues: values,
		CreatedAt:    d.CreatedAt,
	}
	if d.UpdatedAt != nil {
		out.UpdatedAt = *d.UpdatedAt
	}
	return out
}

func (m *DocumentMapper) ToEntities(models []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(models))
	for i, d := range models {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
