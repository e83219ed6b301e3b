package auth

import (
	"context"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/config"
)

// UserFinder is the slice of the user store the auth service needs.
type UserFinder interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// AuthService authenticates credentials and issues bearer tokens.
type AuthService struct {
	store      UserFinder
	authConfig config.AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserFinder, authConfig config.AuthConfig) *AuthService {
	return &AuthService{
		store:      store,
		authConfig: authConfig,
	}
}

// Login authenticates a username/password pair and returns a signed token.
// Unknown users and wrong passwords produce the same "invalid credentials"
// error so a caller cannot probe which half was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if !CheckPassword(user.HashedPassword, req.Password) {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	token, expiresAt, err := IssueToken(user.Username, s.authConfig.JWTSecret, s.authConfig.TokenExpiry)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt.Unix(),
	}, nil
}
