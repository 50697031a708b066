package service

import (
	"context"
	"mime/multipart"
	"net/url"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/model"
	"github.com/greenspoon/backend/internal/query"
	"github.com/greenspoon/backend/internal/store"
	"github.com/greenspoon/backend/internal/types"
	"github.com/greenspoon/backend/internal/validation"
)

// RecipeService orchestrates the recipe lifecycle: validation, enrichment,
// persistence, ownership checks and cascading cleanup.
type RecipeService struct {
	recipes   *store.RecipeStore
	refs      *store.ReferenceStore
	users     *store.UserStore
	enricher  Enricher
	images    ImageStore
	validator *validation.Validator
	log       *logrus.Logger
}

func NewRecipeService(
	recipes *store.RecipeStore,
	refs *store.ReferenceStore,
	users *store.UserStore,
	enricher Enricher,
	images ImageStore,
	validator *validation.Validator,
	log *logrus.Logger,
) *RecipeService {
	return &RecipeService{
		recipes:   recipes,
		refs:      refs,
		users:     users,
		enricher:  enricher,
		images:    images,
		validator: validator,
		log:       log,
	}
}

// Create validates and enriches the input, persists the recipe bound to its
// creator, then attaches the optional image. An image failure after the
// persist does not roll the recipe back; the record stays without an image.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, input *types.RecipeInput, image *multipart.FileHeader) (*model.Recipe, error) {
	if err := s.validator.Recipe(ctx, input); err != nil {
		return nil, err
	}

	creator, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if creator.IsDeleted {
		return nil, apperr.Authorization(apperr.UserDeleted)
	}

	facts, err := s.enricher.Enrich(ctx, input.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		Name:        input.Name,
		Ingredients: input.Ingredients,
		Steps:       input.Steps,
		Difficulty:  input.Difficulty,
		CookingTime: input.CookingTime,
		CategoryID:  input.Category,
		CreatorID:   creator.ID,
		Calories:    facts.Calories,
		Nutrients:   facts.Nutrients,
		Labels:      facts.Labels,
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}

	if image != nil {
		if err := s.attachImage(ctx, recipe, image); err != nil {
			return nil, err
		}
	}

	return s.recipes.GetByID(ctx, recipe.ID)
}

func (s *RecipeService) attachImage(ctx context.Context, recipe *model.Recipe, image *multipart.FileHeader) error {
	if err := s.validator.Image(image); err != nil {
		return err
	}
	imageID, err := s.images.Save(ctx, image, "meals", recipe.ID)
	if err != nil {
		s.log.WithError(err).WithField("recipe_id", recipe.ID).Error(apperr.ImageUploadFailed)
		return apperr.Internal(apperr.ImageUploadFailed, err)
	}
	recipe.ImageID = imageID
	return s.recipes.Save(ctx, recipe)
}

// Get returns a single recipe with its relations resolved.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	return s.recipes.GetByID(ctx, id)
}

// List translates the raw query parameters into a plan and executes it.
func (s *RecipeService) List(ctx context.Context, params url.Values) (*store.RecipeList, error) {
	plan, err := query.Translate(params)
	if err != nil {
		return nil, err
	}
	return s.recipes.List(ctx, plan)
}

// Update applies the new field values after an ownership check,
// re-enriching only when the ingredient list actually changed. Enrichment
// runs before any write so its failure leaves the stored recipe untouched.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uuid.UUID, input *types.RecipeInput, image *multipart.FileHeader) (*model.Recipe, error) {
	if err := s.validator.Recipe(ctx, input); err != nil {
		return nil, err
	}

	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.CreatorID != userID {
		return nil, apperr.Authorization(apperr.RecipeCannotUpdate)
	}

	if !ingredientsEqual(recipe.Ingredients, input.Ingredients) {
		facts, err := s.enricher.Enrich(ctx, input.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Calories = facts.Calories
		recipe.Nutrients = facts.Nutrients
		recipe.Labels = facts.Labels
	}

	if image != nil {
		if err := s.validator.Image(image); err != nil {
			return nil, err
		}
		imageID, err := s.images.Save(ctx, image, "meals", recipe.ID)
		if err != nil {
			return nil, apperr.Internal(apperr.ImageUploadFailed, err)
		}
		recipe.ImageID = imageID
	}

	recipe.Name = input.Name
	// An absent description leaves the stored one alone; only a key
	// present in the request replaces it.
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	recipe.Ingredients = input.Ingredients
	recipe.Steps = input.Steps
	recipe.Difficulty = input.Difficulty
	recipe.CookingTime = input.CookingTime
	recipe.CategoryID = input.Category

	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, err
	}

	return s.recipes.GetByID(ctx, recipeID)
}

// Delete removes the recipe after an ownership check. The store cascades
// the favorite and label links; the stored image release is best-effort.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.CreatorID != userID {
		return nil, apperr.Authorization(apperr.RecipeCannotDelete)
	}

	if err := s.recipes.Delete(ctx, recipe); err != nil {
		return nil, err
	}

	if recipe.ImageID != "" {
		if err := s.images.Delete(ctx, recipe.ImageID); err != nil {
			s.log.WithError(err).WithField("image_id", recipe.ImageID).Error(apperr.ImageDeleteFailed)
		}
	}

	return recipe, nil
}

// Reference returns one of the static collections, dispatching on the
// categories-vs-labels discriminator. An unknown kind yields an empty list.
func (s *RecipeService) Reference(ctx context.Context, kind string) (interface{}, error) {
	switch kind {
	case "categories":
		return s.refs.Categories(ctx)
	case "labels":
		return s.refs.Labels(ctx)
	default:
		return []interface{}{}, nil
	}
}

// ingredientsEqual compares serialized ingredient lists: same order, same
// strings. Any difference triggers exactly one re-enrichment.
func ingredientsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
