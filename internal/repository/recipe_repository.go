package repository

import (
	"github.com/yukikurage/foodgram-api/internal/database"
	"github.com/yukikurage/foodgram-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRecipeRepository is a GORM implementation of RecipeRepository
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &GormRecipeRepository{db: db}
}

func withRecipeRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id")
		}).
		Preload("Ingredients.Ingredient").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_tags.tag_id")
		}).
		Preload("Tags.Tag")
}

// Create stores the recipe, then its ingredient and tag rows, atomically
func (r *GormRecipeRepository) Create(recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return writeRecipeAssociations(tx, recipe.ID, ingredients, tagIDs)
	})
}

// Update saves the recipe and replaces both association sets atomically
func (r *GormRecipeRepository) Update(recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return writeRecipeAssociations(tx, recipe.ID, ingredients, tagIDs)
	})
}

func writeRecipeAssociations(tx *gorm.DB, recipeID uint64, ingredients []models.RecipeIngredient, tagIDs []uint64) error {
	if len(ingredients) > 0 {
		rows := make([]models.RecipeIngredient, len(ingredients))
		for i, ingredient := range ingredients {
			rows[i] = models.RecipeIngredient{
				RecipeID:     recipeID,
				IngredientID: ingredient.IngredientID,
				Amount:       ingredient.Amount,
			}
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}

	if len(tagIDs) > 0 {
		rows := make([]models.RecipeTag, len(tagIDs))
		for i, tagID := range tagIDs {
			rows[i] = models.RecipeTag{RecipeID: recipeID, TagID: tagID}
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}

	return nil
}

// deleteRecipeDependents removes the rows referencing the recipes matched by the
// recipe_id condition.
func deleteRecipeDependents(tx *gorm.DB, condition string, args ...interface{}) error {
	for _, model := range []interface{}{
		&models.Favorite{},
		&models.Cart{},
		&models.RecipeIngredient{},
		&models.RecipeTag{},
	} {
		if err := tx.Where(condition, args...).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the recipe with its ingredient, tag and bookmark rows
func (r *GormRecipeRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteRecipeDependents(tx, "recipe_id = ?", id); err != nil {
			return err
		}

		result := tx.Delete(&models.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRecipeRepository) FindByID(id uint64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := withRecipeRelations(r.db).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List retrieves recipes matching every set filter, newest first
func (r *GormRecipeRepository) List(filter RecipeFilter) ([]models.Recipe, error) {
	query := r.db.Model(&models.Recipe{})

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		tagSubQuery := r.db.Model(&models.RecipeTag{}).
			Select("1").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("recipe_tags.recipe_id = recipes.id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("EXISTS (?)", tagSubQuery)
	}
	if filter.FavoritedBy != nil {
		favoriteSubQuery := r.db.Model(&models.Favorite{}).
			Select("1").
			Where("favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", *filter.FavoritedBy)
		query = query.Where("EXISTS (?)", favoriteSubQuery)
	}
	if filter.InCartOf != nil {
		cartSubQuery := r.db.Model(&models.Cart{}).
			Select("1").
			Where("carts.recipe_id = recipes.id").
			Where("carts.user_id = ?", *filter.InCartOf)
		query = query.Where("EXISTS (?)", cartSubQuery)
	}

	var recipes []models.Recipe
	if err := withRecipeRelations(query).Scopes(database.NewestFirst).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *GormRecipeRepository) ListByAuthor(authorID uint64, limit int) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if limit == 0 {
		return recipes, nil
	}
	err := r.db.
		Where("author_id = ?", authorID).
		Scopes(database.NewestFirst, database.Limit(limit)).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *GormRecipeRepository) CountByAuthor(authorID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// ShoppingList groups cart ingredients by name and unit and sums their amounts
func (r *GormRecipeRepository) ShoppingList(userID uint64) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN carts ON carts.recipe_id = recipe_ingredients.recipe_id").
		Where("carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Order("ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
