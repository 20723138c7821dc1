package entity

import (
	"time"

	"github.com/google/uuid"
)

type Template struct {
	Id          uuid.UUID
	Name        string
	Description string
	Content     string // rich text skeleton (Quill delta JSON or plain text)
	Category    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
