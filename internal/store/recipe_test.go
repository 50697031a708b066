package store

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/model"
	"github.com/greenspoon/backend/internal/query"
)

func TestRecipeStoreGetByID(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "a@example.com", "alice")
	category := seedCategory(t, db, "soup")
	recipe := seedRecipe(t, db, "Tomato soup", user, category)

	recipes := NewRecipeStore(db)

	loaded, err := recipes.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, loaded.ID)
	require.NotNil(t, loaded.Creator)
	assert.Equal(t, user.ID, loaded.Creator.ID)
	require.NotNil(t, loaded.Category)
	assert.Equal(t, "soup", loaded.Category.Name)
	assert.Empty(t, loaded.MarkedAsFavoriteBy)
}

func TestRecipeStoreGetByIDNotFound(t *testing.T) {
	db := testDB(t)
	recipes := NewRecipeStore(db)

	missing := uuid.New()
	_, err := recipes.GetByID(context.Background(), missing)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "This recipe is not found")
	assert.Contains(t, err.Error(), missing.String())
}

func TestRecipeStoreListFiltersAndPaginates(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "a@example.com", "alice")
	category := seedCategory(t, db, "soup")
	other := seedCategory(t, db, "dessert")

	for i, name := range []string{"Tomato soup", "Onion soup", "Miso soup"} {
		recipe := &model.Recipe{
			Name:        name,
			Ingredients: model.StringArray{"water"},
			Steps:       model.StringArray{"Boil"},
			Calories:    300 + i*100,
			Difficulty:  1,
			CookingTime: 20,
			CategoryID:  category.ID,
			CreatorID:   user.ID,
		}
		require.NoError(t, NewRecipeStore(db).Create(ctx, recipe))
	}
	seedRecipe(t, db, "Brownie", user, other)

	recipes := NewRecipeStore(db)

	params := url.Values{}
	params.Set("name", "soup")
	params.Set("calories[lte]", "400")
	plan, err := query.Translate(params)
	require.NoError(t, err)

	list, err := recipes.List(ctx, plan)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Empty(t, list.Message)
	assert.Nil(t, list.Pagination.Next)

	// Window of one row per page.
	params = url.Values{}
	params.Set("category", category.ID.String())
	params.Set("limit", "1")
	params.Set("page", "2")
	plan, err = query.Translate(params)
	require.NoError(t, err)

	list, err = recipes.List(ctx, plan)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	require.NotNil(t, list.Pagination.Next)
	require.NotNil(t, list.Pagination.Prev)
	assert.Equal(t, 3, list.Pagination.Next.Page)
	assert.Equal(t, 1, list.Pagination.Prev.Page)
}

func TestRecipeStoreListEmptyResult(t *testing.T) {
	db := testDB(t)
	recipes := NewRecipeStore(db)

	params := url.Values{}
	params.Set("name", "nothing matches this")
	plan, err := query.Translate(params)
	require.NoError(t, err)

	list, err := recipes.List(context.Background(), plan)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, query.EmptyResultMessage, list.Message)
}

func TestRecipeStoreFavoriteLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "a@example.com", "alice")
	fan := seedUser(t, db, "b@example.com", "bob")
	category := seedCategory(t, db, "soup")
	recipe := seedRecipe(t, db, "Tomato soup", owner, category)

	recipes := NewRecipeStore(db)

	require.NoError(t, recipes.UpdateFavorite(ctx, recipe.ID, fan.ID, true))
	// Adding twice is a no-op, not an error.
	require.NoError(t, recipes.UpdateFavorite(ctx, recipe.ID, fan.ID, true))

	ids, err := recipes.FavoriteUserIDs(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{fan.ID}, ids)

	// The user-side view agrees.
	users := NewUserStore(db)
	favIDs, err := users.FavoriteIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{recipe.ID}, favIDs)

	require.NoError(t, recipes.UpdateFavorite(ctx, recipe.ID, fan.ID, false))
	ids, err = recipes.FavoriteUserIDs(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRecipeStoreDeleteClearsFavorites(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "a@example.com", "alice")
	fan := seedUser(t, db, "b@example.com", "bob")
	category := seedCategory(t, db, "soup")
	recipe := seedRecipe(t, db, "Tomato soup", owner, category)

	recipes := NewRecipeStore(db)
	require.NoError(t, recipes.UpdateFavorite(ctx, recipe.ID, fan.ID, true))

	require.NoError(t, recipes.Delete(ctx, recipe))

	_, err := recipes.GetByID(ctx, recipe.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// No orphaned favorite rows left behind.
	favIDs, err := NewUserStore(db).FavoriteIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, favIDs)
}

func TestRecipeStoreRemoveUserFromAllFavorites(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "a@example.com", "alice")
	fan := seedUser(t, db, "b@example.com", "bob")
	category := seedCategory(t, db, "soup")
	first := seedRecipe(t, db, "Tomato soup", owner, category)
	second := seedRecipe(t, db, "Onion soup", owner, category)

	recipes := NewRecipeStore(db)
	require.NoError(t, recipes.UpdateFavorite(ctx, first.ID, fan.ID, true))
	require.NoError(t, recipes.UpdateFavorite(ctx, second.ID, fan.ID, true))

	require.NoError(t, recipes.RemoveUserFromAllFavorites(ctx, fan.ID))

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		ids, err := recipes.FavoriteUserIDs(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, ids)
	}
}
