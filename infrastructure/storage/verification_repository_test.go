package storage

import (
	"dm-lab/contract"
	"dm-lab/errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestVerificationRepository_Pending(t *testing.T) {
	req := require.New(t)
	repo := NewVerificationRepository(newTestDB(t), slog.Default())
	expiresAt := time.Now().Add(time.Minute).Truncate(time.Microsecond)

	// Given a pending verification
	err := repo.SavePending("v1", contract.PendingVerification{
		PhoneNumber: "+15555555555",
		CodeHash:    "$argon2id$...",
		ExpiresAt:   expiresAt,
	})
	req.NoError(err)

	// When it is read back
	pending, err := repo.GetPending("v1")

	// Then it is intact
	req.NoError(err)
	req.Equal("+15555555555", pending.PhoneNumber)
	req.Equal("$argon2id$...", pending.CodeHash)
	req.True(expiresAt.Equal(pending.ExpiresAt))

	// When consumed
	req.NoError(repo.DeletePending("v1"))
	_, err = repo.GetPending("v1")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestVerificationRepository_RecordAttempt(t *testing.T) {
	req := require.New(t)
	repo := NewVerificationRepository(newTestDB(t), slog.Default())
	req.NoError(repo.SavePending("v1", contract.PendingVerification{
		PhoneNumber: "+15555555555",
		ExpiresAt:   time.Now().Add(time.Minute),
	}))

	// When two checks are recorded
	first, err := repo.RecordAttempt("v1")
	req.NoError(err)
	second, err := repo.RecordAttempt("v1")
	req.NoError(err)

	// Then the count is persisted with the verification
	req.Equal(1, first)
	req.Equal(2, second)
	pending, err := repo.GetPending("v1")
	req.NoError(err)
	req.Equal(2, pending.Attempts)
	req.Equal("+15555555555", pending.PhoneNumber)

	_, err = repo.RecordAttempt("unknown")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestVerificationRepository_SavePending_AlreadyExpired(t *testing.T) {
	req := require.New(t)
	repo := NewVerificationRepository(newTestDB(t), slog.Default())

	err := repo.SavePending("v1", contract.PendingVerification{ExpiresAt: time.Now().Add(-time.Second)})

	req.ErrorIs(err, errors.ErrCodeExpired)
}

func TestVerificationRepository_ResolveUID_IsStable(t *testing.T) {
	req := require.New(t)
	repo := NewVerificationRepository(newTestDB(t), slog.Default())

	first, err := repo.ResolveUID("+15555555555")
	req.NoError(err)
	again, err := repo.ResolveUID("+15555555555")
	req.NoError(err)
	other, err := repo.ResolveUID("+16666666666")
	req.NoError(err)

	req.Equal(first, again)
	req.NotEqual(first, other)
}

func TestVerificationRepository_Revoke(t *testing.T) {
	req := require.New(t)
	repo := NewVerificationRepository(newTestDB(t), slog.Default())

	revoked, err := repo.IsRevoked("t1")
	req.NoError(err)
	req.False(revoked)

	req.NoError(repo.Revoke("t1", time.Now().Add(time.Hour)))
	req.NoError(repo.Revoke("t2", time.Now().Add(-time.Hour)))

	revoked, err = repo.IsRevoked("t1")
	req.NoError(err)
	req.True(revoked)
	revoked, err = repo.IsRevoked("t2")
	req.NoError(err)
	req.False(revoked)
}
