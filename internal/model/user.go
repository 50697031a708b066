package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Username     string    `gorm:"size:20" json:"username"`
	Intro        string    `gorm:"size:300" json:"intro,omitempty"`
	ImageID      string    `gorm:"size:255" json:"image,omitempty"`
	// IsDeleted is a one-way flag. A deleted account is inert: no profile
	// mutation, favoriting or recipe creation is permitted for it.
	IsDeleted bool `gorm:"not null;default:false" json:"-"`

	Recipes []Recipe `gorm:"foreignKey:CreatorID" json:"recipes,omitempty"`

	// Favorites is loaded from recipe_favorites, kept off the users table.
	Favorites []uuid.UUID `gorm:"-" json:"favorites"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicUser is the profile shape exposed to anyone but the owner.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	ImageID  string    `json:"image,omitempty"`
	Intro    string    `json:"intro,omitempty"`
}

// Public strips everything but the publicly visible fields.
func Public(u *User) PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		ImageID:  u.ImageID,
		Intro:    u.Intro,
	}
}
