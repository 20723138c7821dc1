package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTemplateRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Content     string `json:"content" validate:"required"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateTemplateRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	Category    *string   `json:"category"`
	IsActive    *bool     `json:"is_active"`
}

type TemplateResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	IsActive    bool       `json:"is_active"`
	Variables   []string   `json:"variables"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type TemplateListResponse struct {
	Items []*TemplateResponse `json:"items"`
	Total int64               `json:"total"`
}
