package services

import (
	"context"
	"dm-lab/domain"
	"dm-lab/errors"
	"dm-lab/mocks"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRosterService_ListOtherUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every other profile", func(t *testing.T) {
		req := require.New(t)
		profiles := mocks.NewMockIProfileDirectory(gomock.NewController(t))
		svc := NewRosterService(profiles, slog.Default())
		others := []domain.Profile{{ID: "U2", DisplayName: "Bob"}, {ID: "U3", DisplayName: "Cid"}}
		profiles.EXPECT().ListExcept(gomock.Any(), "U1").Return(others, nil)

		roster, err := svc.ListOtherUsers(ctx, "U1")

		req.NoError(err)
		req.Equal(others, roster)
	})

	t.Run("nobody else gives an empty list", func(t *testing.T) {
		req := require.New(t)
		profiles := mocks.NewMockIProfileDirectory(gomock.NewController(t))
		svc := NewRosterService(profiles, slog.Default())
		profiles.EXPECT().ListExcept(gomock.Any(), "U1").Return(nil, nil)

		roster, err := svc.ListOtherUsers(ctx, "U1")

		req.NoError(err)
		req.NotNil(roster)
		req.Empty(roster)
	})

	t.Run("failure gives an empty list and a fetch error", func(t *testing.T) {
		req := require.New(t)
		profiles := mocks.NewMockIProfileDirectory(gomock.NewController(t))
		svc := NewRosterService(profiles, slog.Default())
		profiles.EXPECT().ListExcept(gomock.Any(), "U1").Return(nil, stderrors.New("unreachable"))

		roster, err := svc.ListOtherUsers(ctx, "U1")

		req.ErrorIs(err, errors.ErrFetch)
		req.NotNil(roster)
		req.Empty(roster)
	})

	t.Run("no identity is refused before any read", func(t *testing.T) {
		req := require.New(t)
		svc := NewRosterService(mocks.NewMockIProfileDirectory(gomock.NewController(t)), slog.Default())

		roster, err := svc.ListOtherUsers(ctx, "")

		req.ErrorIs(err, errors.ErrNotAuthenticated)
		req.Empty(roster)
	})
}
