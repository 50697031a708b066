package service

import (
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenspoon/backend/internal/model"
	"github.com/greenspoon/backend/internal/store"
	"github.com/greenspoon/backend/internal/validation"
)

// fakeEnricher returns canned facts and counts invocations, so tests can
// assert when enrichment was (not) triggered.
type fakeEnricher struct {
	calls int
	facts *NutritionFacts
	err   error
}

func (f *fakeEnricher) Enrich(_ context.Context, _ []string) (*NutritionFacts, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.facts != nil {
		return f.facts, nil
	}
	return &NutritionFacts{
		Calories: 420,
		Nutrients: model.NutrientSet{
			Protein: model.Nutrient{Label: "Protein", Quantity: 12, Unit: "g"},
		},
	}, nil
}

// fakeImageStore records saves and deletes in memory.
type fakeImageStore struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeImageStore) Save(_ context.Context, _ *multipart.FileHeader, folder string, id uuid.UUID) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	imageID := folder + "/" + id.String()
	f.saved = append(f.saved, imageID)
	return imageID, nil
}

func (f *fakeImageStore) Delete(_ context.Context, imageID string) error {
	f.deleted = append(f.deleted, imageID)
	return nil
}

type testEnv struct {
	db        *gorm.DB
	users     *store.UserStore
	recipes   *store.RecipeStore
	refs      *store.ReferenceStore
	validator *validation.Validator
	enricher  *fakeEnricher
	images    *fakeImageStore
	log       *logrus.Logger

	recipeService *RecipeService
	userService   *UserService
}

func newTestEnv(t *testing.T) *testEnv {
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

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		db:       db,
		users:    store.NewUserStore(db),
		recipes:  store.NewRecipeStore(db),
		refs:     store.NewReferenceStore(db),
		enricher: &fakeEnricher{},
		images:   &fakeImageStore{},
		log:      log,
	}
	require.NoError(t, env.refs.Seed(context.Background()))

	env.validator = validation.New(env.refs, env.users, 1000000)
	env.recipeService = NewRecipeService(env.recipes, env.refs, env.users, env.enricher, env.images, env.validator, log)
	env.userService = NewUserService(env.users, env.recipes, env.images, env.validator, log)

	return env
}

func (env *testEnv) createUser(t *testing.T, email, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &model.User{Email: email, Username: username, PasswordHash: string(hash)}
	require.NoError(t, env.users.Create(context.Background(), user))
	return user
}

func (env *testEnv) firstCategory(t *testing.T) *model.Category {
	t.Helper()
	categories, err := env.refs.Categories(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	return &categories[0]
}
