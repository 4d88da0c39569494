package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	appshared "github.com/ecommerce/backend/internal/application/shared"
	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService manages customer profiles
type ProfileService struct {
	profileRepo identity.ProfileRepository
	txScope     appshared.TransactionScope
	blacklist   auth.TokenBlacklist
	// revokeTTL is how long a user-wide token invalidation is kept; the refresh token lifetime
	revokeTTL time.Duration
	logger    *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	profileRepo identity.ProfileRepository,
	txScope appshared.TransactionScope,
	blacklist auth.TokenBlacklist,
	revokeTTL time.Duration,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		txScope:     txScope,
		blacklist:   blacklist,
		revokeTTL:   revokeTTL,
		logger:      logger,
	}
}

// List returns a page of profiles
func (s *ProfileService) List(ctx context.Context, filter shared.Filter) ([]ProfileResponse, int64, error) {
	profiles, err := s.profileRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.profileRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		items[i] = ToProfileResponse(&profiles[i])
	}
	return items, total, nil
}

// GetByID returns a profile by ID
func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(profile)
	return &resp, nil
}

// GetByUserID returns the profile attached to a user
func (s *ProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(profile)
	return &resp, nil
}

// Update replaces every field of a profile
func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, details identity.ProfileDetails) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := profile.Update(details); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	resp := ToProfileResponse(profile)
	return &resp, nil
}

// Patch updates only the fields set in patch
func (s *ProfileService) Patch(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := profile.Update(patch.ApplyTo(profile.Details())); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	resp := ToProfileResponse(profile)
	return &resp, nil
}

// Delete removes a profile together with its user and cart and invalidates
// every token issued to that user. Invalidation is the last step of the
// transaction; when it fails nothing is deleted.
func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	userID := profile.UserID

	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if err := repos.Carts().DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if err := repos.Profiles().Delete(ctx, profile.ID); err != nil {
			return err
		}
		if err := repos.Users().Delete(ctx, userID); err != nil {
			return err
		}
		return s.revokeUserTokens(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Profile deleted",
		zap.String("profile_id", profile.ID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

func (s *ProfileService) revokeUserTokens(ctx context.Context, userID uuid.UUID) error {
	if s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.revokeTTL); err != nil {
		s.logger.Error("Failed to invalidate tokens of deleted user",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return fmt.Errorf("invalidate user tokens: %w", err)
	}
	return nil
}
