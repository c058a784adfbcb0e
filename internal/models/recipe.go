package models

import "time"

type Recipe struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	AuthorID    uint64    `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Image       string    `gorm:"type:varchar(255);not null" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null;check:chk_recipe_cooking_time,cooking_time >= 1" json:"cooking_time"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Author      User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Tags        []RecipeTag        `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

// RecipeIngredient links a recipe to an ingredient with the amount used.
type RecipeIngredient struct {
	ID           uint64 `gorm:"primarykey" json:"-"`
	RecipeID     uint64 `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint64 `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int    `gorm:"not null;default:1;check:chk_recipe_ingredient_amount,amount >= 1" json:"amount"`

	// Relations
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
}

type RecipeTag struct {
	RecipeID uint64 `gorm:"primarykey" json:"recipe_id"`
	TagID    uint64 `gorm:"primarykey" json:"tag_id"`

	// Relations
	Tag Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag,omitempty"`
}
