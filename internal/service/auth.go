package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/model"
	"github.com/greenspoon/backend/internal/store"
	"github.com/greenspoon/backend/internal/types"
	"github.com/greenspoon/backend/internal/validation"
)

// AuthService handles registration, login and token issue/verification.
type AuthService struct {
	users     *store.UserStore
	validator *validation.Validator
	jwtSecret string
	jwtExpiry time.Duration
	log       *logrus.Logger
}

func NewAuthService(users *store.UserStore, validator *validation.Validator, jwtSecret string, jwtExpiry time.Duration, log *logrus.Logger) *AuthService {
	return &AuthService{
		users:     users,
		validator: validator,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		log:       log,
	}
}

// Register validates the credentials, stores a hashed password and returns
// a signed token.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	if err := s.validator.Email(ctx, email, true); err != nil {
		return "", err
	}
	if err := s.validator.Password(password, true); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal("failed to hash password", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return s.GenerateToken(user)
}

// Login verifies the credentials against the stored hash and returns a
// signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if err := s.validator.Email(ctx, email, false); err != nil {
		return "", err
	}
	if err := s.validator.Password(password, false); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return "", apperr.Authentication(apperr.AuthNotRegistered)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Authentication(apperr.AuthInvalidPwd)
	}

	return s.GenerateToken(user)
}

// GenerateToken signs a JWT carrying the user's identity.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   user.ID,
		Username: user.Username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", apperr.Internal("failed to sign token", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Authorization(apperr.AuthRegOrLog)
	}
	return claims, nil
}
