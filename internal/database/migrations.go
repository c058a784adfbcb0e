package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/foodgram-api/internal/models"
	"gorm.io/gorm"
)

// EnsureConstraints creates the check constraints that AutoMigrate only adds
// when it creates a table, so databases created by older releases get them too.
// SQLite cannot add constraints to an existing table and is skipped.
func EnsureConstraints(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		return nil
	}

	constraints := []struct {
		model interface{}
		name  string
	}{
		{&models.Subscription{}, "no_self_subscription"},
		{&models.Recipe{}, "chk_recipe_cooking_time"},
		{&models.RecipeIngredient{}, "chk_recipe_ingredient_amount"},
	}

	migrator := db.Migrator()
	for _, c := range constraints {
		if migrator.HasConstraint(c.model, c.name) {
			continue
		}
		if err := migrator.CreateConstraint(c.model, c.name); err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", c.name, err)
		}
		slog.Info("created constraint", "name", c.name)
	}

	return nil
}
