package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/rogerio-castellano/promo-quoter/internal/repo"
)

const TokenType = "bearer"

// Session is what register, login and refresh hand back to the client.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         models.User
}

type AuthService struct {
	users      repo.UserRepository
	jwt        *JWTManager
	refresh    RefreshTokenStore
	refreshTTL time.Duration
}

func NewAuthService(users repo.UserRepository, jwt *JWTManager, refresh RefreshTokenStore, refreshTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwt: jwt, refresh: refresh, refreshTTL: refreshTTL}
}

func (a *AuthService) JWT() *JWTManager {
	return a.jwt
}

func (a *AuthService) Register(ctx context.Context, email, username, password string) (Session, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.users.CreateUser(ctx, models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			return Session{}, apperr.Validation("Email already registered")
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	zap.L().Info("user registered", zap.String("user_id", user.ID))
	return a.issue(ctx, user)
}

func (a *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return Session{}, apperr.Auth("Incorrect email or password")
		}
		return Session{}, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, apperr.Auth("Incorrect email or password")
	}
	if !user.IsActive {
		return Session{}, apperr.Auth("Inactive user")
	}
	return a.issue(ctx, user)
}

// Refresh exchanges a refresh token for a new session. The old token is
// consumed, so every refresh rotates it.
func (a *AuthService) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	userID, err := a.refresh.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenInvalid) {
			return Session{}, apperr.Auth("Invalid refresh token")
		}
		return Session{}, fmt.Errorf("consume refresh token: %w", err)
	}

	user, err := a.CurrentUser(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	return a.issue(ctx, user)
}

// CurrentUser loads an active user by id. Unknown or inactive users are an auth error.
func (a *AuthService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return models.User{}, apperr.Auth("Could not validate credentials")
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return models.User{}, apperr.Auth("Inactive user")
	}
	return user, nil
}

func (a *AuthService) issue(ctx context.Context, user models.User) (Session, error) {
	access, err := a.jwt.GenerateToken(user)
	if err != nil {
		return Session{}, fmt.Errorf("generate token: %w", err)
	}

	refresh := uuid.NewString()
	if err := a.refresh.Save(ctx, refresh, user.ID, a.refreshTTL); err != nil {
		return Session{}, fmt.Errorf("store refresh token: %w", err)
	}
	return Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}
