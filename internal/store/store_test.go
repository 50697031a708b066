package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenspoon/backend/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Label{},
		&model.Recipe{},
		&model.RecipeFavorite{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, username string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Username: username, PasswordHash: "-"}
	require.NoError(t, NewUserStore(db).Create(context.Background(), user))
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedRecipe(t *testing.T, db *gorm.DB, name string, creator *model.User, category *model.Category) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		Name:        name,
		Ingredients: model.StringArray{"1 cup water"},
		Steps:       model.StringArray{"Boil"},
		Calories:    300,
		Difficulty:  1,
		CookingTime: 20,
		CategoryID:  category.ID,
		CreatorID:   creator.ID,
	}
	require.NoError(t, NewRecipeStore(db).Create(context.Background(), recipe))
	return recipe
}
