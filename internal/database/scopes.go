package database

import (
	"gorm.io/gorm"
)

// Limit caps the number of rows; a negative limit leaves the query untouched.
func Limit(limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit < 0 {
			return db
		}
		return db.Limit(limit)
	}
}

// NewestFirst orders recipes by publication date, newest first.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("recipes.created_at DESC").Order("recipes.id DESC")
}
