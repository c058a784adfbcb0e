package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/foodgram-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookmarkKind selects the table a BookmarkRepository works on
type BookmarkKind string

const (
	Favorites BookmarkKind = "favorites"
	Carts     BookmarkKind = "carts"
)

// GormBookmarkRepository is a GORM implementation of BookmarkRepository
type GormBookmarkRepository struct {
	db   *gorm.DB
	kind BookmarkKind
}

// NewFavoriteRepository creates a BookmarkRepository over favorites
func NewFavoriteRepository(db *gorm.DB) BookmarkRepository {
	return &GormBookmarkRepository{db: db, kind: Favorites}
}

// NewCartRepository creates a BookmarkRepository over the shopping cart
func NewCartRepository(db *gorm.DB) BookmarkRepository {
	return &GormBookmarkRepository{db: db, kind: Carts}
}

func (r *GormBookmarkRepository) model(userID, recipeID uint64) interface{} {
	if r.kind == Carts {
		return &models.Cart{UserID: userID, RecipeID: recipeID}
	}
	return &models.Favorite{UserID: userID, RecipeID: recipeID}
}

func (r *GormBookmarkRepository) Exists(userID, recipeID uint64) (bool, error) {
	var count int64
	err := r.db.Table(string(r.kind)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormBookmarkRepository) Add(userID, recipeID uint64) error {
	if err := r.db.Omit(clause.Associations).Create(r.model(userID, recipeID)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
		}
		return err
	}
	return nil
}

func (r *GormBookmarkRepository) Remove(userID, recipeID uint64) error {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(r.model(0, 0))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormBookmarkRepository) RecipeIDs(userID uint64, recipeIDs []uint64) (map[uint64]bool, error) {
	marked := make(map[uint64]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return marked, nil
	}

	var ids []uint64
	err := r.db.Table(string(r.kind)).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		marked[id] = true
	}
	return marked, nil
}
