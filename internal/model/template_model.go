package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Template struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Content     string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(50);not null;default:'custom';index"`
	IsActive    bool      `gorm:"default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Template) TableName() string {
	return "templates"
}
