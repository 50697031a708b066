package types

import (
	"github.com/google/uuid"
)

// RecipeInput is the client-settable part of a recipe. Calories, nutrients
// and labels are derived by enrichment and deliberately absent here.
type RecipeInput struct {
	Name string `json:"name"`
	// Description is optional; when absent the stored value is kept.
	Description *string   `json:"description"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Difficulty  int       `json:"difficulty"`
	CookingTime int       `json:"cookingTime"`
	Category    uuid.UUID `json:"category"`
}

// UserUpdate carries the allowed self-update fields. Pointers distinguish
// "absent" from "set to zero value"; any other key in the request body is
// rejected outright.
type UserUpdate struct {
	Username    *string      `json:"username"`
	Password    *string      `json:"password"`
	NewPassword *string      `json:"newPassword"`
	Favorites   *[]uuid.UUID `json:"favorites"`
	Intro       *string      `json:"intro"`
	// Image is accepted so the key stays on the allow-list; the value
	// itself is ignored, image changes arrive as the multipart avatar.
	Image *string `json:"image"`
}

// Empty reports whether no field was supplied at all.
func (u *UserUpdate) Empty() bool {
	return u.Username == nil && u.Password == nil && u.NewPassword == nil &&
		u.Favorites == nil && u.Intro == nil && u.Image == nil
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
