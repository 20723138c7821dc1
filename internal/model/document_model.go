package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title        string     `gorm:"type:varchar(300);not null"`
	Content      string     `gorm:"type:text;not null"`
	TemplateId   *uuid.UUID `gorm:"type:uuid;index"`
	TemplateName string     `gorm:"type:varchar(200)"`
	FilledValues datatypes.JSONMap
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
