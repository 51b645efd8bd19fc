package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByStyle struct {
	Style string
}

func (s ByStyle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("style = ?", s.Style)
}

type CreatedUntil struct {
	Until time.Time
}

func (s CreatedUntil) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at <= ?", s.Until)
}

// PromptSearch matches the search term against both the raw and the
// translated prompt, case insensitive.
type PromptSearch struct {
	Term string
}

func (s PromptSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Term + "%"
	return db.Where("prompt ILIKE ? OR translated_prompt ILIKE ?", pattern, pattern)
}
