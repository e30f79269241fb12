package storage

import (
	"dm-lab/contract"
	"dm-lab/domain/document"
	"dm-lab/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	pendingPrefix = "verification:pending:"
	phonePrefix   = "identity:phone:"
	revokedPrefix = "identity:revoked:"
)

// VerificationRepository holds the server side of phone verification:
// pending codes, the phone number to uid mapping, and revoked credentials.
// Pending verifications and revocations expire through badger TTLs.
type VerificationRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewVerificationRepository(db *badger.DB, log *slog.Logger) *VerificationRepository {
	return &VerificationRepository{db: db, log: log}
}

func (r *VerificationRepository) SavePending(id string, pending contract.PendingVerification) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return putPending(txn, id, pending)
	})
}

// GetPending returns ErrNotFound once the verification expired or was consumed.
func (r *VerificationRepository) GetPending(id string) (contract.PendingVerification, error) {
	var pending contract.PendingVerification
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		pending, err = getPending(txn, id)
		return err
	})
	return pending, err
}

// RecordAttempt bumps the attempt counter inside one transaction, so
// concurrent checks of the same verification conflict instead of sharing a count.
func (r *VerificationRepository) RecordAttempt(id string) (int, error) {
	var attempts int
	err := r.db.Update(func(txn *badger.Txn) error {
		pending, err := getPending(txn, id)
		if err != nil {
			return err
		}
		pending.Attempts++
		attempts = pending.Attempts
		return putPending(txn, id, pending)
	})
	if err != nil {
		return 0, err
	}
	return attempts, nil
}

func putPending(txn *badger.Txn, id string, pending contract.PendingVerification) error {
	ttl := time.Until(pending.ExpiresAt)
	if ttl <= 0 {
		return errors.ErrCodeExpired
	}
	s, err := document.ToStruct(document.Fields{
		"phoneNumber": pending.PhoneNumber,
		"codeHash":    pending.CodeHash,
		"expiresAt":   timestamppb.New(pending.ExpiresAt),
		"attempts":    float64(pending.Attempts),
	})
	if err != nil {
		return err
	}
	data, err := proto.Marshal(s)
	if err != nil {
		return err
	}
	return txn.SetEntry(badger.NewEntry([]byte(pendingPrefix+id), data).WithTTL(ttl))
}

func getPending(txn *badger.Txn, id string) (contract.PendingVerification, error) {
	var pending contract.PendingVerification
	item, err := txn.Get([]byte(pendingPrefix + id))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return pending, errors.ErrNotFound
	}
	if err != nil {
		return pending, err
	}
	err = item.Value(func(val []byte) error {
		var s structpb.Struct
		if err := proto.Unmarshal(val, &s); err != nil {
			return fmt.Errorf("decode pending verification: %w", err)
		}
		doc := document.Document{ID: id, Fields: document.FromStruct(&s)}
		pending.PhoneNumber, _ = doc.String("phoneNumber")
		pending.CodeHash, _ = doc.String("codeHash")
		if ts, ok := doc.Fields["expiresAt"].(*timestamppb.Timestamp); ok {
			pending.ExpiresAt = ts.AsTime()
		}
		if n, ok := doc.Fields["attempts"].(float64); ok {
			pending.Attempts = int(n)
		}
		return nil
	})
	return pending, err
}

func (r *VerificationRepository) DeletePending(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(pendingPrefix + id))
	})
}

// ResolveUID returns the stable uid of a phone number, allocating one on
// first sign-in.
func (r *VerificationRepository) ResolveUID(phoneNumber string) (string, error) {
	var uid string
	key := []byte(phonePrefix + phoneNumber)
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case err == nil:
			return item.Value(func(val []byte) error {
				uid = string(val)
				return nil
			})
		case stderrors.Is(err, badger.ErrKeyNotFound):
			uid = uuid.NewString()
			r.log.Info("New identity", "uid", uid)
			return txn.Set(key, []byte(uid))
		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	return uid, nil
}

// Revoke remembers a token id until the token would have expired anyway.
func (r *VerificationRepository) Revoke(tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(revokedPrefix+tokenID), []byte{1}).WithTTL(ttl))
	})
}

func (r *VerificationRepository) IsRevoked(tokenID string) (bool, error) {
	revoked := false
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(revokedPrefix + tokenID))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		revoked = true
		return nil
	})
	return revoked, err
}
