package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Name        string      `gorm:"size:100;not null" json:"name"`
	Description string      `gorm:"size:500" json:"description,omitempty"`
	Ingredients StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps       StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Calories    int         `gorm:"not null" json:"calories"`
	Difficulty  int         `gorm:"not null" json:"difficulty"`
	CookingTime int         `gorm:"not null" json:"cooking_time"`
	Nutrients   NutrientSet `gorm:"type:jsonb" json:"nutrients"`
	ImageID     string      `gorm:"size:255" json:"image,omitempty"`
	CategoryID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"category_id"`
	Category    *Category   `json:"category,omitempty"`
	// CreatorID never changes after creation.
	CreatorID uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator   *User     `gorm:"foreignKey:CreatorID" json:"-"`
	// PublicCreator is the serialized view of Creator. Recipe reads are
	// unauthenticated, so only the public profile fields go on the wire.
	PublicCreator *PublicUser `gorm:"-" json:"creator,omitempty"`
	// Labels are derived from the ingredients by enrichment, never
	// client-supplied.
	Labels []Label `gorm:"many2many:recipe_labels" json:"labels,omitempty"`

	// MarkedAsFavoriteBy is loaded from recipe_favorites on single reads.
	MarkedAsFavoriteBy []uuid.UUID `gorm:"-" json:"marked_as_favorite_by,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeFavorite is one row of the recipe/user favoriting relation.
type RecipeFavorite struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
}

func (RecipeFavorite) TableName() string {
	return "recipe_favorites"
}
