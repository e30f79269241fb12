package services

import (
	"context"
	"dm-lab/auth"
	"dm-lab/contract"
	"dm-lab/domain"
	"dm-lab/errors"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// SessionMarkerKey is the session cache key of the durable login marker.
const SessionMarkerKey = "user"

type ISessionService interface {
	CheckPersistedSession(ctx context.Context) (domain.Session, error)
	RequestVerification(ctx context.Context, phoneNumber, displayName string) error
	ConfirmVerification(ctx context.Context, code string) (domain.Session, error)
	Logout(ctx context.Context) error
	Session() domain.Session
}

// sessionMarker is the value stored under SessionMarkerKey.
// It only routes the next launch past the login flow; it grants nothing.
type sessionMarker struct {
	UID string `json:"uid"`
}

// pendingVerification remembers the identity once the code was accepted, since
// the identity store consumes a handle on success.
type pendingVerification struct {
	handle      string
	phoneNumber string
	displayName string
	verified    *domain.Identity
}

type SessionOption func(*SessionService)

// WithRevalidateOnResume makes CheckPersistedSession ask the identity store
// whether its own credential is still valid before trusting the marker.
func WithRevalidateOnResume(revalidate bool) SessionOption {
	return func(s *SessionService) {
		s.revalidate = revalidate
	}
}

// SessionService drives Unknown -> Unauthenticated -> CodeSent -> Authenticated.
// Every operation holds the lock for its whole duration, so transitions are
// applied one at a time even when callers are concurrent.
type SessionService struct {
	mu         sync.Mutex
	identity   contract.IIdentityStore
	profiles   contract.IProfileDirectory
	cache      contract.ISessionCache
	log        *slog.Logger
	revalidate bool
	session    domain.Session
	pending    *pendingVerification
}

func NewSessionService(identity contract.IIdentityStore, profiles contract.IProfileDirectory,
	cache contract.ISessionCache, log *slog.Logger, opts ...SessionOption) *SessionService {
	s := &SessionService{
		identity: identity,
		profiles: profiles,
		cache:    cache,
		log:      log,
		session:  domain.Session{State: domain.Unknown},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns a copy of the current session.
func (s *SessionService) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// CheckPersistedSession restores an Authenticated session from the marker,
// or settles on Unauthenticated. An unreadable cache counts as no marker.
func (s *SessionService) CheckPersistedSession(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker, err := s.readMarker(ctx)
	if err != nil {
		s.log.Warn("Session cache unreadable, starting logged out", "error", err)
	}
	if marker == nil {
		s.setUnauthenticated()
		return s.snapshot(), nil
	}

	identity := &domain.Identity{ID: marker.UID}
	if s.revalidate {
		current, err := s.identity.CurrentIdentity(ctx)
		switch {
		case err != nil:
			// Offline start keeps the optimistic session
			s.log.Warn("Could not revalidate session, trusting marker", "uid", marker.UID, "error", err)
		case current == nil || current.ID != marker.UID:
			s.log.Info("Persisted session no longer valid", "uid", marker.UID)
			s.clearMarker(ctx)
			s.setUnauthenticated()
			return s.snapshot(), nil
		default:
			identity = current
		}
	}

	s.session = domain.Session{State: domain.Authenticated, Identity: identity}
	s.log.Debug("Session resumed", "uid", identity.ID)
	return s.snapshot(), nil
}

// RequestVerification validates the inputs locally, then asks the identity
// store to send a code. Calling it again from CodeSent sends a new code.
func (s *SessionService) RequestVerification(ctx context.Context, phoneNumber, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.State == domain.Authenticated {
		return fmt.Errorf("%w: already authenticated", errors.ErrInvalidState)
	}

	valReq := auth.VerificationRequest{PhoneNumber: phoneNumber, DisplayName: displayName}
	if err := auth.ValidateVerification(valReq); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	handle, err := s.identity.StartVerification(ctx, phoneNumber)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidPhone) {
			return fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
		}
		return asNetworkError(err)
	}

	s.pending = &pendingVerification{handle: handle, phoneNumber: phoneNumber, displayName: displayName}
	s.session = domain.Session{State: domain.CodeSent}
	s.log.Debug("Verification code sent")
	return nil
}

// ConfirmVerification exchanges the code for an identity, creates the profile
// on first login, persists the marker and authenticates the session.
// Any failure leaves the session in CodeSent so the code can be retried; a
// retry after a profile failure reuses the identity already obtained.
func (s *SessionService) ConfirmVerification(ctx context.Context, code string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.State != domain.CodeSent || s.pending == nil {
		return s.snapshot(), fmt.Errorf("%w: no verification in progress", errors.ErrInvalidState)
	}
	if err := auth.ValidateConfirmation(auth.ConfirmationRequest{Code: code}); err != nil {
		return s.snapshot(), fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	identity, err := s.verify(ctx, code)
	if err != nil {
		return s.snapshot(), err
	}

	profile := domain.Profile{
		ID:          identity.ID,
		DisplayName: s.pending.displayName,
		PhoneNumber: identity.PhoneNumber,
		AvatarURL:   identity.PhotoURL,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		s.pending.verified = &identity
		return s.snapshot(), err
	}

	if err := s.writeMarker(ctx, identity.ID); err != nil {
		// Next launch goes through login again, which is safe
		s.log.Warn("Could not persist session marker", "uid", identity.ID, "error", err)
	}

	s.pending = nil
	s.session = domain.Session{State: domain.Authenticated, Identity: &identity}
	s.log.Info("Session authenticated", "uid", identity.ID)
	return s.snapshot(), nil
}

// Logout always ends in Unauthenticated. A failing remote sign-out is only
// logged; a failing local cache removal is returned after the transition.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.identity.SignOut(ctx); err != nil {
		s.log.Warn("Remote sign out failed", "error", err)
	}

	err := s.cache.Remove(ctx, SessionMarkerKey)
	s.setUnauthenticated()
	if err != nil {
		return fmt.Errorf("clear session marker: %w", err)
	}
	s.log.Info("Logged out")
	return nil
}

func (s *SessionService) verify(ctx context.Context, code string) (domain.Identity, error) {
	if s.pending.verified != nil {
		return *s.pending.verified, nil
	}
	identity, err := s.identity.ConfirmVerification(ctx, s.pending.handle, code)
	if err != nil {
		if stderrors.Is(err, errors.ErrBadCode) || stderrors.Is(err, errors.ErrCodeExpired) {
			return domain.Identity{}, fmt.Errorf("%w: %w", errors.ErrVerificationFailed, err)
		}
		return domain.Identity{}, asNetworkError(err)
	}
	if identity.PhoneNumber == "" {
		identity.PhoneNumber = s.pending.phoneNumber
	}
	return identity, nil
}

func (s *SessionService) readMarker(ctx context.Context) (*sessionMarker, error) {
	raw, err := s.cache.Get(ctx, SessionMarkerKey)
	if err != nil || raw == nil {
		return nil, err
	}
	var marker sessionMarker
	if err := json.Unmarshal([]byte(*raw), &marker); err != nil || strings.TrimSpace(marker.UID) == "" {
		s.log.Warn("Discarding malformed session marker")
		s.clearMarker(ctx)
		return nil, nil
	}
	return &marker, nil
}

func (s *SessionService) writeMarker(ctx context.Context, uid string) error {
	data, err := json.Marshal(sessionMarker{UID: uid})
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, SessionMarkerKey, string(data))
}

func (s *SessionService) clearMarker(ctx context.Context) {
	if err := s.cache.Remove(ctx, SessionMarkerKey); err != nil {
		s.log.Warn("Could not clear session marker", "error", err)
	}
}

func (s *SessionService) setUnauthenticated() {
	s.pending = nil
	s.session = domain.Session{State: domain.Unauthenticated}
}

func (s *SessionService) snapshot() domain.Session {
	session := s.session
	if session.Identity != nil {
		identity := *session.Identity
		session.Identity = &identity
	}
	return session
}

// asNetworkError keeps typed failures and folds anything else into ErrNetwork.
func asNetworkError(err error) error {
	for _, typed := range []error{errors.ErrNetwork, errors.ErrFetch, errors.ErrInvalidInput,
		errors.ErrNotAuthenticated, errors.ErrInvalidToken, errors.ErrPermissionDenied} {
		if stderrors.Is(err, typed) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", errors.ErrNetwork, err)
}
