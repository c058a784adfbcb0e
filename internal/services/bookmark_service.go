package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/foodgram-api/internal/models"
	"github.com/yukikurage/foodgram-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAlreadyBookmarked = errors.New("recipe already added")
	ErrNotBookmarked     = errors.New("recipe was not added")
)

// Messages returned to clients for rejected bookmark changes.
const (
	MsgAlreadyBookmarked = "Нельзя дважды добавить рецепт"
	MsgNotBookmarked     = "Рецепт не был добавлен"
)

// BookmarkService adds and removes recipes from one per-user list,
// either favorites or the shopping cart.
type BookmarkService struct {
	recipeRepo   repository.RecipeRepository
	bookmarkRepo repository.BookmarkRepository
}

func NewBookmarkService(recipeRepo repository.RecipeRepository, bookmarkRepo repository.BookmarkRepository) *BookmarkService {
	return &BookmarkService{
		recipeRepo:   recipeRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

func (s *BookmarkService) findRecipe(recipeID uint64) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return recipe, nil
}

// Add bookmarks the recipe. The existence check gives a friendly error and
// the unique index rejects a concurrent duplicate.
func (s *BookmarkService) Add(userID, recipeID uint64) (*models.Recipe, error) {
	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.bookmarkRepo.Exists(userID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check bookmark: %w", err)
	}
	if exists {
		return nil, ErrAlreadyBookmarked
	}

	if err := s.bookmarkRepo.Add(userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrAlreadyBookmarked
		}
		return nil, fmt.Errorf("failed to add bookmark: %w", err)
	}
	return recipe, nil
}

func (s *BookmarkService) Remove(userID, recipeID uint64) error {
	if _, err := s.findRecipe(recipeID); err != nil {
		return err
	}

	if err := s.bookmarkRepo.Remove(userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotBookmarked
		}
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}
