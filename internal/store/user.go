package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/model"
)

// UserStore owns account persistence.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperr.Internal("failed to create user", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("%s (id: %s)", apperr.UserNotFound, id)
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return &user, nil
}

// GetWithRecipes is the self-view read: owned recipes preloaded, favorite
// ids attached.
func (s *UserStore) GetWithRecipes(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Recipes").First(&user, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("%s (id: %s)", apperr.UserNotFound, id)
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	favorites, err := s.FavoriteIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Favorites = favorites

	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound(apperr.UserNotFound)
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return &user, nil
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check email", err)
	}
	return count > 0, nil
}

func (s *UserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check username", err)
	}
	return count > 0, nil
}

// UpdateFields applies a partial column update.
func (s *UserStore) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return apperr.Internal("failed to update user", err)
	}
	return nil
}

// FavoriteIDs returns the user's favorited recipe ids.
func (s *UserStore) FavoriteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&model.RecipeFavorite{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, apperr.Internal("failed to load favorites", err)
	}
	return ids, nil
}

// SoftDelete scrubs the identity-revealing fields and flips is_deleted in
// one write. The underlying record stays; the favorite purge is a separate
// step on the recipe side.
func (s *UserStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	scrub := map[string]interface{}{
		"username":      "Deleted user",
		"email":         fmt.Sprintf("%s@deleted.invalid", id),
		"password_hash": "-",
		"intro":         "",
		"image_id":      "",
		"is_deleted":    true,
	}
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(scrub).Error
	if err != nil {
		return apperr.Internal(apperr.UserDeleteFailed, err)
	}
	return nil
}
