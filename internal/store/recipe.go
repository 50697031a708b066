package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/model"
	"github.com/greenspoon/backend/internal/query"
)

// RecipeStore owns recipe persistence, including the favoriting relation
// and query-plan execution.
type RecipeStore struct {
	db *gorm.DB
}

func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// RecipeList is the result of executing a query plan.
type RecipeList struct {
	Items      []model.Recipe   `json:"recipes"`
	Pagination query.Pagination `json:"pagination"`
	Message    string           `json:"message"`
}

// Create persists the recipe together with its label links. The creator
// binding is the creator_id column, so the owner's recipe list is consistent
// with the new row by construction.
func (s *RecipeStore) Create(ctx context.Context, recipe *model.Recipe) error {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return apperr.Internal("failed to create recipe", err)
	}
	return nil
}

// creatorColumns narrows the preloaded creator to its public profile
// fields. Recipe reads are unauthenticated; the full account record never
// leaves the store through this relation.
func creatorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "image_id", "intro")
}

// GetByID returns the recipe with its creator, category, labels and
// favoriting users resolved.
func (s *RecipeStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).
		Preload("Creator", creatorColumns).
		Preload("Category").
		Preload("Labels").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("%s (id: %s)", apperr.RecipeNotFound, id)
		}
		return nil, apperr.Internal("failed to load recipe", err)
	}

	favoritedBy, err := s.FavoriteUserIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.MarkedAsFavoriteBy = favoritedBy
	publishCreator(&recipe)

	return &recipe, nil
}

func publishCreator(recipe *model.Recipe) {
	if recipe.Creator != nil {
		public := model.Public(recipe.Creator)
		recipe.PublicCreator = &public
	}
}

// List executes a translated query plan and returns the page of matching
// recipes plus pagination links derived from the filtered total.
func (s *RecipeStore) List(ctx context.Context, plan *query.Plan) (*RecipeList, error) {
	filtered := func() *gorm.DB {
		return s.applyConditions(s.db.WithContext(ctx).Model(&model.Recipe{}), plan.Conditions)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, apperr.Internal("failed to count recipes", err)
	}

	q := filtered()
	if len(plan.Select) > 0 {
		q = q.Select(plan.Select)
	} else {
		q = q.Preload("Creator", creatorColumns).Preload("Category").Preload("Labels")
	}
	for _, order := range plan.Sort {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: order.Column}, Desc: order.Desc})
	}

	var items []model.Recipe
	if err := q.Offset(plan.Skip).Limit(plan.Limit).Find(&items).Error; err != nil {
		return nil, apperr.Internal("failed to list recipes", err)
	}
	for i := range items {
		publishCreator(&items[i])
	}

	list := &RecipeList{
		Items:      items,
		Pagination: plan.Paginate(total),
	}
	if len(items) == 0 {
		list.Message = query.EmptyResultMessage
	}
	return list, nil
}

func (s *RecipeStore) applyConditions(db *gorm.DB, conditions []query.Condition) *gorm.DB {
	for _, cond := range conditions {
		switch cond.Op {
		case query.OpContains:
			like := "%" + strings.ToLower(fmt.Sprint(cond.Value)) + "%"
			column := cond.Column
			if column == "ingredients" && s.db.Dialector.Name() == "postgres" {
				db = db.Where("LOWER(ingredients::text) LIKE ?", like)
			} else {
				db = db.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), like)
			}
		case query.OpIn:
			db = db.Where(fmt.Sprintf("%s IN ?", cond.Column), cond.Values)
		case query.OpGt:
			db = db.Where(fmt.Sprintf("%s > ?", cond.Column), cond.Value)
		case query.OpGte:
			db = db.Where(fmt.Sprintf("%s >= ?", cond.Column), cond.Value)
		case query.OpLt:
			db = db.Where(fmt.Sprintf("%s < ?", cond.Column), cond.Value)
		case query.OpLte:
			db = db.Where(fmt.Sprintf("%s <= ?", cond.Column), cond.Value)
		default:
			db = db.Where(fmt.Sprintf("%s = ?", cond.Column), cond.Value)
		}
	}
	return db
}

// Save persists field changes and fully replaces the label set.
func (s *RecipeStore) Save(ctx context.Context, recipe *model.Recipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Labels").Replace(recipe.Labels); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(recipe).Error
	})
	if err != nil {
		return apperr.Internal("failed to save recipe", err)
	}
	return nil
}

// Delete removes the recipe and its favoriting and label links in one
// transaction. Image release is the caller's concern.
func (s *RecipeStore) Delete(ctx context.Context, recipe *model.Recipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Labels").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, "id = ?", recipe.ID).Error
	})
	if err != nil {
		return apperr.Internal(apperr.RecipeDeleteFailed, err)
	}
	return nil
}

// UpdateFavorite is an idempotent membership toggle on the recipe's
// favoriting-user set.
func (s *RecipeStore) UpdateFavorite(ctx context.Context, recipeID, userID uuid.UUID, add bool) error {
	var err error
	if add {
		err = s.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.RecipeFavorite{RecipeID: recipeID, UserID: userID}).Error
	} else {
		err = s.db.WithContext(ctx).
			Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Delete(&model.RecipeFavorite{}).Error
	}
	if err != nil {
		return apperr.Internal("failed to update favorites", err)
	}
	return nil
}

// RemoveUserFromAllFavorites purges the user from every recipe's favoriting
// set. Used on account deletion.
func (s *RecipeStore) RemoveUserFromAllFavorites(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.RecipeFavorite{}).Error
	if err != nil {
		return apperr.Internal("failed to purge favorites", err)
	}
	return nil
}

// FavoriteUserIDs returns the ids of everyone who favorited the recipe.
func (s *RecipeStore) FavoriteUserIDs(ctx context.Context, recipeID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&model.RecipeFavorite{}).
		Where("recipe_id = ?", recipeID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, apperr.Internal("failed to load favorites", err)
	}
	return ids, nil
}
