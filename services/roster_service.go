package services

import (
	"context"
	"dm-lab/contract"
	"dm-lab/domain"
	"dm-lab/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
)

type IRosterService interface {
	ListOtherUsers(ctx context.Context, currentIdentityID string) ([]domain.Profile, error)
}

type RosterService struct {
	profiles contract.IProfileDirectory
	log      *slog.Logger
}

func NewRosterService(profiles contract.IProfileDirectory, log *slog.Logger) IRosterService {
	return &RosterService{profiles: profiles, log: log}
}

// ListOtherUsers reads every profile but the caller's, once.
// On failure it returns an empty, non-nil list together with the error.
func (s *RosterService) ListOtherUsers(ctx context.Context, currentIdentityID string) ([]domain.Profile, error) {
	if currentIdentityID == "" {
		return []domain.Profile{}, errors.ErrNotAuthenticated
	}
	profiles, err := s.profiles.ListExcept(ctx, currentIdentityID)
	if err != nil {
		s.log.Warn("Roster fetch failed", "error", err)
		if !stderrors.Is(err, errors.ErrFetch) {
			err = fmt.Errorf("%w: %v", errors.ErrFetch, err)
		}
		return []domain.Profile{}, err
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}
