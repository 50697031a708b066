package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenspoon/backend/config"
	"github.com/greenspoon/backend/internal/database"
	"github.com/greenspoon/backend/internal/model"
	"github.com/greenspoon/backend/internal/store"
)

// Seeds the schema, the reference data, and a few demo accounts with
// recipes for local development.
func main() {
	log := logrus.New()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	ctx := context.Background()

	refs := store.NewReferenceStore(db)
	if err := refs.Seed(ctx); err != nil {
		log.WithError(err).Fatal("failed to seed reference data")
	}

	users := store.NewUserStore(db)
	recipes := store.NewRecipeStore(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("Seedpassword1"), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash seed password")
	}

	demoUsers := []model.User{
		{Email: "alice@example.com", Username: "alice", PasswordHash: string(hash)},
		{Email: "bob@example.com", Username: "bob", PasswordHash: string(hash)},
	}
	for i := range demoUsers {
		if err := users.Create(ctx, &demoUsers[i]); err != nil {
			log.WithError(err).WithField("email", demoUsers[i].Email).
				Warn("skipping existing demo user")
		}
	}

	categories, err := refs.Categories(ctx)
	if err != nil || len(categories) == 0 {
		log.WithError(err).Fatal("reference categories missing")
	}

	demoRecipes := []model.Recipe{
		{
			Name:        "Overnight oats",
			Description: "Oats soaked in milk with fruit, ready in the morning.",
			Ingredients: model.StringArray{"1 cup rolled oats", "1 cup milk", "1 banana"},
			Steps:       model.StringArray{"Combine oats and milk", "Refrigerate overnight", "Top with banana"},
			Calories:    420,
			Difficulty:  1,
			CookingTime: 10,
			CategoryID:  categories[0].ID,
			CreatorID:   demoUsers[0].ID,
		},
		{
			Name:        "Tomato soup",
			Description: "A simple blended soup for weeknights.",
			Ingredients: model.StringArray{"6 tomatoes", "1 onion", "2 cups vegetable stock"},
			Steps:       model.StringArray{"Roast the tomatoes and onion", "Simmer in stock", "Blend until smooth"},
			Calories:    250,
			Difficulty:  2,
			CookingTime: 40,
			CategoryID:  categories[len(categories)-1].ID,
			CreatorID:   demoUsers[1].ID,
		},
	}
	for i := range demoRecipes {
		if err := recipes.Create(ctx, &demoRecipes[i]); err != nil {
			log.WithError(err).WithField("name", demoRecipes[i].Name).
				Warn("failed to create demo recipe")
		}
	}

	log.Info("seeding complete")
}
