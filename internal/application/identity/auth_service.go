package identity

import (
	"context"
	"errors"
	"fmt"

	appshared "github.com/ecommerce/backend/internal/application/shared"
	"github.com/ecommerce/backend/internal/domain/cart"
	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Errors returned by the auth service
var (
	ErrEmailTaken    = shared.ErrAlreadyExists.WithMessage("Email already exists!")
	ErrUsernameTaken = shared.ErrAlreadyExists.WithMessage("A user with that username already exists.")
	ErrTokenExpired  = shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	ErrTokenInvalid  = shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	ErrMaxRefresh    = shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
)

// AuthService handles registration, login, token refresh and logout
type AuthService struct {
	userRepo       identity.UserRepository
	txScope        appshared.TransactionScope
	jwtService     *auth.JWTService
	blacklist      auth.TokenBlacklist
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	txScope appshared.TransactionScope,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		txScope:    txScope,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *AuthService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register creates the user, its profile and an empty cart in one transaction
// and returns a token pair for the new account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	user, err := identity.NewUser(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	var profile *identity.Profile
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		exists, err := repos.Users().ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailTaken
		}
		exists, err = repos.Users().ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if exists {
			return ErrUsernameTaken
		}

		if err := repos.Users().Save(ctx, user); err != nil {
			return err
		}

		profile, err = identity.NewProfile(user.ID, input.Profile)
		if err != nil {
			return err
		}
		if err := repos.Profiles().Save(ctx, profile); err != nil {
			return err
		}

		userCart, err := cart.NewCart(user.ID)
		if err != nil {
			return err
		}
		return repos.Carts().Save(ctx, userCart)
	})
	if err != nil {
		s.logger.Warn("Registration failed", zap.String("username", user.Username), zap.Error(err))
		return nil, err
	}

	if err := shared.PublishAndClear(ctx, s.eventPublisher, user); err != nil {
		s.logger.Warn("Failed to publish registration event", zap.Error(err))
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &RegisterResult{
		User:    toUserInfo(user),
		Profile: ToProfileResponse(profile),
		Tokens:  *tokens,
	}, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown user", zap.String("username", input.Username))
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, identity.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &LoginResult{User: toUserInfo(user), Tokens: *tokens}, nil
}

// Refresh exchanges a refresh token for a new token pair.
// The account must still exist so deleted users cannot keep refreshing.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}

	if s.blacklist != nil {
		invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			return nil, fmt.Errorf("check token invalidation: %w", err)
		}
		if invalidated {
			return nil, ErrTokenInvalid
		}
	}

	pair, _, err := s.jwtService.RefreshTokenPair(refreshToken)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("user_id", claims.UserID))

	result := toTokenResult(pair.AccessToken, pair.RefreshToken, pair.AccessTokenExpiresAt, pair.RefreshTokenExpiresAt, pair.TokenType)
	return &result, nil
}

// Logout revokes the presented access token until it would have expired
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" {
		return shared.ErrUnauthorized.WithMessage("Could not delete token")
	}
	if s.blacklist != nil {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to blacklist token", zap.Error(err))
			return fmt.Errorf("revoke token: %w", err)
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

func (s *AuthService) issueTokens(user *identity.User) (*TokenResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	result := toTokenResult(pair.AccessToken, pair.RefreshToken, pair.AccessTokenExpiresAt, pair.RefreshTokenExpiresAt, pair.TokenType)
	return &result, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return ErrMaxRefresh
	default:
		return ErrTokenInvalid
	}
}
