package specification

import "gorm.io/gorm"

// ActiveOnly restricts to templates available to the conversation engine.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// SearchByText matches a case-insensitive substring against name and
// description.
type SearchByText struct {
	Query string
}

func (s SearchByText) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
}

// ByCategory filters templates by their catalog category.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}
