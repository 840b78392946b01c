package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/config"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthTokens represents JWT tokens for authentication
// @Description JWT authentication tokens
type AuthTokens struct {
	AccessToken string    `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt   time.Time `json:"expiresAt" example:"2023-01-02T12:00:00Z"`
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, req types.RegisterUser) (*types.User, error)
	Login(ctx context.Context, req types.LoginUser) (*types.User, *AuthTokens, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

type userService struct {
	repository UserRepository
	auth       config.AuthConfig
	logger     *Logger.Logger
}

func New(repository UserRepository, auth config.AuthConfig, logger *Logger.Logger) UserService {
	return &userService{repository: repository, auth: auth, logger: logger}
}

// Register implements UserService.
func (u *userService) Register(ctx context.Context, req types.RegisterUser) (*types.User, error) {
	if _, err := u.repository.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	}

	cost := u.auth.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	usr := &types.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := u.repository.Create(ctx, usr); err != nil {
		return nil, err
	}
	u.logger.Infof("registered user %s", usr.Email)
	return usr, nil
}

// Login implements UserService.
func (u *userService) Login(ctx context.Context, req types.LoginUser) (*types.User, *AuthTokens, error) {
	usr, err := u.repository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(usr)
	if err != nil {
		return nil, nil, err
	}
	return usr, tokens, nil
}

// GetByID implements UserService.
func (u *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return u.repository.GetByID(ctx, userID)
}

// ValidateToken implements UserService.
func (u *userService) ValidateToken(_ context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(u.auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (u *userService) issueTokens(usr *types.User) (*AuthTokens, error) {
	hours := u.auth.TokenHours
	if hours == 0 {
		hours = 24
	}
	expiresAt := time.Now().Add(time.Duration(hours) * time.Hour)

	claims := Claims{
		UserID: usr.ID.String(),
		Email:  usr.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usr.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.auth.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthTokens{AccessToken: signed, ExpiresAt: expiresAt}, nil
}
