package repositories

import (
	"context"
	"dm-lab/domain"
	"dm-lab/domain/document"
	"dm-lab/errors"
	"dm-lab/mocks"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProfileRepository_Upsert_IsIdempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewProfileRepository(newDocumentStore(t), slog.Default())

	// Given a profile created at first login
	req.NoError(repo.Upsert(ctx, domain.Profile{ID: "U1", DisplayName: "Ann", PhoneNumber: "+1555"}))

	// When the same identity logs in again with another name
	req.NoError(repo.Upsert(ctx, domain.Profile{ID: "U1", DisplayName: "Annie", PhoneNumber: "+1555"}))

	// Then the first profile is kept
	profile, err := repo.Get(ctx, "U1")
	req.NoError(err)
	req.Equal(domain.Profile{ID: "U1", DisplayName: "Ann", PhoneNumber: "+1555"}, profile)
}

func TestProfileRepository_Upsert_RejectsEmptyID(t *testing.T) {
	req := require.New(t)
	repo := NewProfileRepository(newDocumentStore(t), slog.Default())

	err := repo.Upsert(context.Background(), domain.Profile{DisplayName: "Ann"})

	req.ErrorIs(err, errors.ErrInvalidInput)
}

func TestProfileRepository_Get_NotFound(t *testing.T) {
	req := require.New(t)
	repo := NewProfileRepository(newDocumentStore(t), slog.Default())

	_, err := repo.Get(context.Background(), "ghost")

	req.ErrorIs(err, errors.ErrNotFound)
}

func TestProfileRepository_ListExcept(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewProfileRepository(newDocumentStore(t), slog.Default())

	for _, p := range []domain.Profile{
		{ID: "U1", DisplayName: "Ann", PhoneNumber: "+1"},
		{ID: "U2", DisplayName: "Bob", PhoneNumber: "+2", AvatarURL: "https://example.com/bob.png"},
		{ID: "U3", DisplayName: "Cid", PhoneNumber: "+3"},
	} {
		req.NoError(repo.Upsert(ctx, p))
	}

	// When U1 lists the others
	others, err := repo.ListExcept(ctx, "U1")

	// Then U1 is never part of the result
	req.NoError(err)
	req.Len(others, 2)
	req.Equal("U2", others[0].ID)
	req.Equal("https://example.com/bob.png", others[0].AvatarURL)
	req.Equal("U3", others[1].ID)

	// And a lone user sees nobody
	alone, err := NewProfileRepository(newDocumentStore(t), slog.Default()).ListExcept(ctx, "U1")
	req.NoError(err)
	req.Empty(alone)
}

func TestProfileRepository_TransportErrorsBecomeFetchErrors(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIDocumentStore(ctrl)
	repo := NewProfileRepository(store, slog.Default())
	boom := stderrors.New("connection reset")

	store.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, boom)
	store.EXPECT().Get(gomock.Any(), UsersCollection, "U1").Return(document.Document{}, boom)
	store.EXPECT().Create(gomock.Any(), UsersCollection, "U1", gomock.Any()).Return(boom)

	_, err := repo.ListExcept(context.Background(), "U1")
	req.ErrorIs(err, errors.ErrFetch)

	_, err = repo.Get(context.Background(), "U1")
	req.ErrorIs(err, errors.ErrFetch)

	err = repo.Upsert(context.Background(), domain.Profile{ID: "U1"})
	req.ErrorIs(err, errors.ErrFetch)
}

func TestProfileRepository_ListExcept_FiltersServerSide(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIDocumentStore(ctrl)
	repo := NewProfileRepository(store, slog.Default())

	store.EXPECT().
		Query(gomock.Any(), document.NewQuery(UsersCollection).Where("uid", document.OpNotEqual, "U1")).
		Return([]document.Document{{ID: "U2", Fields: document.Fields{"uid": "U2", "name": "Bob"}}}, nil)

	others, err := repo.ListExcept(context.Background(), "U1")

	req.NoError(err)
	req.Equal([]domain.Profile{{ID: "U2", DisplayName: "Bob"}}, others)
}
