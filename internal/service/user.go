package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/model"
	"github.com/greenspoon/backend/internal/store"
	"github.com/greenspoon/backend/internal/types"
	"github.com/greenspoon/backend/internal/validation"
)

// UserService orchestrates profile updates, password rotation, favorites
// reconciliation and soft deletion.
type UserService struct {
	users     *store.UserStore
	recipes   *store.RecipeStore
	images    ImageStore
	validator *validation.Validator
	log       *logrus.Logger
}

func NewUserService(
	users *store.UserStore,
	recipes *store.RecipeStore,
	images ImageStore,
	validator *validation.Validator,
	log *logrus.Logger,
) *UserService {
	return &UserService{
		users:     users,
		recipes:   recipes,
		images:    images,
		validator: validator,
		log:       log,
	}
}

// GetMe is the self-view: the full owned document. Deleted accounts are
// rejected.
func (s *UserService) GetMe(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetWithRecipes(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, apperr.Authorization(apperr.UserDeleted)
	}
	return user, nil
}

// GetPublic exposes only the public profile fields.
func (s *UserService) GetPublic(ctx context.Context, id uuid.UUID) (*model.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	public := model.Public(user)
	return &public, nil
}

// Update applies the allowed sub-updates in a fixed order: username, intro,
// favorites, password, image. Each is validated independently; a failure
// aborts the remainder without rolling back what was already applied.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, upd *types.UserUpdate, avatar *multipart.FileHeader) (*model.User, error) {
	if upd.Empty() && avatar == nil {
		return nil, apperr.Validation(apperr.UserMissingData)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, apperr.Authorization(apperr.UserDeleted)
	}

	if upd.Username != nil && *upd.Username != user.Username {
		if err := s.validator.Username(ctx, *upd.Username); err != nil {
			return nil, err
		}
		fields := map[string]interface{}{"username": strings.TrimSpace(*upd.Username)}
		if err := s.users.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	if upd.Intro != nil {
		if err := s.validator.Intro(*upd.Intro); err != nil {
			return nil, err
		}
		if err := s.users.UpdateFields(ctx, id, map[string]interface{}{"intro": *upd.Intro}); err != nil {
			return nil, err
		}
	}

	if upd.Favorites != nil {
		if err := s.reconcileFavorites(ctx, id, *upd.Favorites); err != nil {
			return nil, err
		}
	}

	if upd.Password != nil || upd.NewPassword != nil {
		if err := s.rotatePassword(ctx, user, upd.Password, upd.NewPassword); err != nil {
			return nil, err
		}
	}

	if avatar != nil {
		if err := s.updateImage(ctx, id, avatar); err != nil {
			return nil, err
		}
	}

	return s.users.GetWithRecipes(ctx, id)
}

// reconcileFavorites computes the full add and remove sets between the
// stored and requested favorite ids and applies every delta, so the
// recipes' favoriting sets and the user's list stay in step even for
// multi-item diffs.
func (s *UserService) reconcileFavorites(ctx context.Context, userID uuid.UUID, requested []uuid.UUID) error {
	previous, err := s.users.FavoriteIDs(ctx, userID)
	if err != nil {
		return err
	}

	prevSet := make(map[uuid.UUID]bool, len(previous))
	for _, id := range previous {
		prevSet[id] = true
	}
	reqSet := make(map[uuid.UUID]bool, len(requested))
	for _, id := range requested {
		reqSet[id] = true
	}

	for _, id := range requested {
		if !prevSet[id] {
			if err := s.recipes.UpdateFavorite(ctx, id, userID, true); err != nil {
				return err
			}
		}
	}
	for _, id := range previous {
		if !reqSet[id] {
			if err := s.recipes.UpdateFavorite(ctx, id, userID, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// rotatePassword requires the current password to match the stored hash and
// the new one to pass the new-password rules.
func (s *UserService) rotatePassword(ctx context.Context, user *model.User, password, newPassword *string) error {
	if password == nil || *password == "" {
		return apperr.Validation(apperr.UserMissingData)
	}

	var next string
	if newPassword != nil {
		next = *newPassword
	}
	if err := s.validator.Password(next, true); err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*password)); err != nil {
		return apperr.Authorization(apperr.AuthInvalidPwd)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	return s.users.UpdateFields(ctx, user.ID, map[string]interface{}{"password_hash": string(hash)})
}

func (s *UserService) updateImage(ctx context.Context, userID uuid.UUID, avatar *multipart.FileHeader) error {
	if err := s.validator.Image(avatar); err != nil {
		return err
	}
	imageID, err := s.images.Save(ctx, avatar, "users", userID)
	if err != nil {
		return apperr.Internal(apperr.ImageUploadFailed, err)
	}
	return s.users.UpdateFields(ctx, userID, map[string]interface{}{"image_id": imageID})
}

// Delete soft-deletes the account: identity fields are scrubbed, the
// deleted flag is verified post-write, the user's id is purged from every
// recipe's favoriting set, and the stored image is released.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, apperr.Authorization(apperr.UserDeleted)
	}

	if err := s.users.SoftDelete(ctx, id); err != nil {
		return nil, err
	}

	// Defensive check against a silently ignored write.
	deleted, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted.IsDeleted {
		return nil, apperr.Internal(apperr.UserDeleteFailed, nil)
	}

	if err := s.recipes.RemoveUserFromAllFavorites(ctx, id); err != nil {
		return nil, err
	}

	if user.ImageID != "" {
		if err := s.images.Delete(ctx, user.ImageID); err != nil {
			s.log.WithError(err).WithField("image_id", user.ImageID).Error(apperr.ImageDeleteFailed)
		}
	}

	return user, nil
}
