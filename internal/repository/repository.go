package repository

import (
	"errors"

	"github.com/yukikurage/foodgram-api/internal/models"
)

// ErrAlreadyExists is returned when a unique index rejects a write.
var ErrAlreadyExists = errors.New("repository: record already exists")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns all users ordered by ID
	List() ([]models.User, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(id uint64, passwordHash string) error

	// Delete removes a user together with their recipes, bookmarks and subscriptions
	Delete(id uint64) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Create(tag *models.Tag) error
	FindByID(id uint64) (*models.Tag, error)
	// FindByIDs returns the tags that exist among ids
	FindByIDs(ids []uint64) ([]models.Tag, error)
	List() ([]models.Tag, error)
}

// IngredientRepository defines the interface for ingredient data access
type IngredientRepository interface {
	Create(ingredient *models.Ingredient) error
	FindByID(id uint64) (*models.Ingredient, error)
	// FindByIDs returns the ingredients that exist among ids
	FindByIDs(ids []uint64) ([]models.Ingredient, error)
	// List returns ingredients whose name starts with namePrefix, case-insensitively
	List(namePrefix string) ([]models.Ingredient, error)
}

// RecipeRepository defines the interface for recipe data access
type RecipeRepository interface {
	// Create stores the recipe and its ingredient and tag rows in one transaction
	Create(recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []uint64) error

	// Update saves the recipe and replaces its ingredient and tag rows in one transaction
	Update(recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []uint64) error

	// Delete removes the recipe and every row that references it
	Delete(id uint64) error

	// FindByID finds a recipe with author, ingredients and tags loaded
	FindByID(id uint64) (*models.Recipe, error)

	// List retrieves recipes newest first
	List(filter RecipeFilter) ([]models.Recipe, error)

	// ListByAuthor returns the author's recipes newest first, up to limit when limit > 0
	ListByAuthor(authorID uint64, limit int) ([]models.Recipe, error)

	// CountByAuthor counts the author's recipes
	CountByAuthor(authorID uint64) (int64, error)

	// ShoppingList sums ingredient amounts over the recipes in the user's cart
	ShoppingList(userID uint64) ([]ShoppingListItem, error)
}

// RecipeFilter holds filtering options for listing recipes
type RecipeFilter struct {
	AuthorID    *uint64
	TagSlugs    []string
	FavoritedBy *uint64
	InCartOf    *uint64
}

// ShoppingListItem is one aggregated line of a shopping list
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Total           int64
}

// BookmarkRepository defines data access for per-user recipe bookmarks
// (favorites and the shopping cart share the same shape).
type BookmarkRepository interface {
	// Exists reports whether the user already bookmarked the recipe
	Exists(userID, recipeID uint64) (bool, error)

	// Add creates the bookmark; a duplicate returns ErrAlreadyExists
	Add(userID, recipeID uint64) error

	// Remove deletes the bookmark; a missing one returns gorm.ErrRecordNotFound
	Remove(userID, recipeID uint64) error

	// RecipeIDs returns which of recipeIDs the user has bookmarked
	RecipeIDs(userID uint64, recipeIDs []uint64) (map[uint64]bool, error)
}

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	// Exists reports whether subscriberID follows authorID
	Exists(subscriberID, authorID uint64) (bool, error)

	// Create stores the subscription; a duplicate returns ErrAlreadyExists
	Create(subscription *models.Subscription) error

	// Delete removes the subscription; a missing one returns gorm.ErrRecordNotFound
	Delete(subscriberID, authorID uint64) error

	// ListAuthors returns the authors subscriberID follows
	ListAuthors(subscriberID uint64) ([]models.User, error)

	// SubscribedAuthorIDs returns which of authorIDs subscriberID follows
	SubscribedAuthorIDs(subscriberID uint64, authorIDs []uint64) (map[uint64]bool, error)
}
