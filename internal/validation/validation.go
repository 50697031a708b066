// Package validation holds the input checks for recipes, user fields and
// uploaded files. Checks are pure besides the existence lookups they make
// through the narrow checker interfaces.
package validation

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/types"
)

// CategoryChecker answers whether a category id references seeded data.
type CategoryChecker interface {
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserChecker answers uniqueness questions about existing accounts.
type UserChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// CalorieCeiling is the enrichment policy cap: recipes nutritionally above
// it are refused, not clamped.
const CalorieCeiling = 700

type Validator struct {
	categories   CategoryChecker
	users        UserChecker
	maxImageSize int64
	validate     *validator.Validate
}

func New(categories CategoryChecker, users UserChecker, maxImageSize int64) *Validator {
	return &Validator{
		categories:   categories,
		users:        users,
		maxImageSize: maxImageSize,
		validate:     validator.New(),
	}
}

// Recipe validates every client-settable recipe field. Unknown fields are
// rejected earlier, at decode time.
func (v *Validator) Recipe(ctx context.Context, in *types.RecipeInput) error {
	if err := v.recipeName(in.Name); err != nil {
		return err
	}
	if err := v.difficulty(in.Difficulty); err != nil {
		return err
	}
	if err := v.cookingTime(in.CookingTime); err != nil {
		return err
	}
	if err := stringList(in.Steps, "Steps", "step"); err != nil {
		return err
	}
	if err := stringList(in.Ingredients, "Ingredients", "ingredient"); err != nil {
		return err
	}
	if err := v.category(ctx, in.Category); err != nil {
		return err
	}
	if in.Description != nil {
		if err := v.Description(*in.Description); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) recipeName(name string) error {
	if name == "" {
		return apperr.Validation("Name is required")
	}
	if len(name) < 3 || len(name) > 100 {
		return apperr.Validation("Name should be min 3, max 100 characters")
	}
	return nil
}

func (v *Validator) difficulty(difficulty int) error {
	if difficulty == 0 {
		return apperr.Validation("Difficulty is required")
	}
	if difficulty < 1 || difficulty > 3 {
		return apperr.Validation("Invalid difficulty")
	}
	return nil
}

func (v *Validator) cookingTime(cookingTime int) error {
	if cookingTime == 0 {
		return apperr.Validation("Cooking time is required")
	}
	if cookingTime < 1 || cookingTime > 120 {
		return apperr.Validation("Cooking time is too long")
	}
	return nil
}

func stringList(values []string, fieldName, itemName string) error {
	if len(values) == 0 {
		return apperr.Validation("%s is required", fieldName)
	}
	for _, value := range values {
		if value == "" {
			return apperr.Validation("Invalid %s", itemName)
		}
	}
	return nil
}

func (v *Validator) category(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.Validation("Category is required")
	}
	exists, err := v.categories.CategoryExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Validation("Id: %s is not found", id)
	}
	return nil
}

func (v *Validator) Description(description string) error {
	if len(description) > 500 {
		return apperr.Validation("Description can be up to 500 characters.")
	}
	return nil
}

// Email checks syntax, and on registration also uniqueness.
func (v *Validator) Email(ctx context.Context, email string, isRegistration bool) error {
	if email == "" {
		return apperr.Validation("Missing email")
	}
	if err := v.validate.Var(email, "email"); err != nil {
		return apperr.Validation("Invalid email format")
	}
	if isRegistration {
		exists, err := v.users.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("Email is already registered")
		}
	}
	return nil
}

// Password applies the strength rules only to new passwords; existing ones
// just need to be present.
func (v *Validator) Password(password string, isNew bool) error {
	if password == "" {
		return apperr.Validation("Invalid password")
	}
	if isNew {
		if len(password) < 8 {
			return apperr.Validation("The password must be at least 8 characters long")
		}
		if password == strings.ToUpper(password) || password == strings.ToLower(password) {
			return apperr.Validation("Password must contain both uppercase and lowercase letters")
		}
	}
	return nil
}

func (v *Validator) Username(ctx context.Context, username string) error {
	exists, err := v.users.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Validation("Username is already in use")
	}

	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return apperr.Validation("Invalid username")
	}
	if len(trimmed) < 3 || len(trimmed) > 20 {
		return apperr.Validation("Username must be a minimum of 3 and a maximum of 20 characters.")
	}
	return nil
}

func (v *Validator) Intro(intro string) error {
	if len(intro) > 300 {
		return apperr.Validation("Introduction can be up to 300 characters long")
	}
	return nil
}

// Image checks the uploaded file's declared MIME type and size against the
// configured maximum.
func (v *Validator) Image(file *multipart.FileHeader) error {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image") {
		return apperr.Validation(apperr.ImageInvalidFile)
	}
	if file.Size > v.maxImageSize {
		return apperr.Validation(apperr.ImageTooLarge)
	}
	return nil
}

// CheckCalories enforces the enrichment calorie ceiling.
func CheckCalories(calories int) error {
	if calories < 0 || calories > CalorieCeiling {
		return apperr.Validation("Your recipe is too high in calories: %d kcal. Maximum value: %d kcal.", calories, CalorieCeiling)
	}
	return nil
}
