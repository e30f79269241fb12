package repositories

import (
	"context"
	"dm-lab/contract"
	"dm-lab/domain"
	"dm-lab/domain/document"
	"dm-lab/errors"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

const UsersCollection = "users"

// Stored field names of a profile document.
const (
	fieldUID         = "uid"
	fieldName        = "name"
	fieldPhoneNumber = "phoneNumber"
	fieldProfilePic  = "profilePic"
)

// ProfileRepository maps profiles onto the users collection, keyed by uid.
type ProfileRepository struct {
	store contract.IDocumentStore
	log   *slog.Logger
}

func NewProfileRepository(store contract.IDocumentStore, log *slog.Logger) contract.IProfileDirectory {
	return &ProfileRepository{store: store, log: log}
}

func (r ProfileRepository) Get(ctx context.Context, id string) (domain.Profile, error) {
	doc, err := r.store.Get(ctx, UsersCollection, id)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Profile{}, err
		}
		return domain.Profile{}, fmt.Errorf("%w: %v", errors.ErrFetch, err)
	}
	return toProfile(doc), nil
}

// Upsert creates the profile if absent. An existing profile is left untouched.
func (r ProfileRepository) Upsert(ctx context.Context, profile domain.Profile) error {
	if profile.ID == "" {
		return fmt.Errorf("%w: empty profile id", errors.ErrInvalidInput)
	}
	err := r.store.Create(ctx, UsersCollection, profile.ID, fromProfile(profile))
	switch {
	case err == nil:
		r.log.Debug("Profile created", "uid", profile.ID)
		return nil
	case stderrors.Is(err, errors.ErrAlreadyExists):
		r.log.Debug("Profile already exists", "uid", profile.ID)
		return nil
	case stderrors.Is(err, errors.ErrInvalidInput), stderrors.Is(err, errors.ErrPermissionDenied):
		return err
	default:
		return fmt.Errorf("%w: %v", errors.ErrFetch, err)
	}
}

// ListExcept reads every profile but the given one, in directory order.
func (r ProfileRepository) ListExcept(ctx context.Context, id string) ([]domain.Profile, error) {
	docs, err := r.store.Query(ctx, document.NewQuery(UsersCollection).Where(fieldUID, document.OpNotEqual, id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrFetch, err)
	}
	profiles := lo.FilterMap(docs, func(doc document.Document, _ int) (domain.Profile, bool) {
		p := toProfile(doc)
		return p, p.ID != "" && p.ID != id
	})
	return profiles, nil
}

func fromProfile(p domain.Profile) document.Fields {
	fields := document.Fields{
		fieldUID:         p.ID,
		fieldName:        p.DisplayName,
		fieldPhoneNumber: p.PhoneNumber,
	}
	if p.AvatarURL != "" {
		fields[fieldProfilePic] = p.AvatarURL
	}
	return fields
}

func toProfile(doc document.Document) domain.Profile {
	uid, ok := doc.String(fieldUID)
	if !ok {
		uid = doc.ID
	}
	name, _ := doc.String(fieldName)
	phone, _ := doc.String(fieldPhoneNumber)
	pic, _ := doc.String(fieldProfilePic)
	return domain.Profile{ID: uid, DisplayName: name, PhoneNumber: phone, AvatarURL: pic}
}
