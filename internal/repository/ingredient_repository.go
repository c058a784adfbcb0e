package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/foodgram-api/internal/models"
	"gorm.io/gorm"
)

// GormIngredientRepository is a GORM implementation of IngredientRepository
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new IngredientRepository
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &GormIngredientRepository{db: db}
}

func (r *GormIngredientRepository) Create(ingredient *models.Ingredient) error {
	if err := r.db.Create(ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
		}
		return err
	}
	return nil
}

func (r *GormIngredientRepository) FindByID(id uint64) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *GormIngredientRepository) FindByIDs(ids []uint64) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	var ingredients []models.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *GormIngredientRepository) List(namePrefix string) ([]models.Ingredient, error) {
	query := r.db.Model(&models.Ingredient{})
	if prefix := strings.TrimSpace(namePrefix); prefix != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '!'", escapeLike(strings.ToLower(prefix))+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Order("name").Order("id").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
