package services

import (
	"context"
	"dm-lab/auth"
	"dm-lab/contract"
	"dm-lab/domain"
	"dm-lab/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// MaxCodeAttempts is how many codes may be checked against one verification
// before it is dropped.
const MaxCodeAttempts = 5

// Credential is what a successful phone verification yields.
type Credential struct {
	Token     string
	Identity  domain.Identity
	ExpiresAt time.Time
}

type IPhoneAuthService interface {
	StartVerification(ctx context.Context, phoneNumber string) (string, error)
	ConfirmVerification(ctx context.Context, verificationID, code string) (Credential, error)
	WhoAmI(ctx context.Context, token string) (domain.Identity, error)
	SignOut(ctx context.Context, token string) error
}

// PhoneAuthService is the identity provider: it sends one-time codes and
// exchanges them for signed credentials bound to a stable uid per phone number.
type PhoneAuthService struct {
	repo       contract.IVerificationRepository
	sender     contract.ICodeSender
	tokens     *auth.TokenIssuer
	log        *slog.Logger
	codeLength int
	codeTTL    time.Duration
	now        func() time.Time
}

func NewPhoneAuthService(repo contract.IVerificationRepository, sender contract.ICodeSender,
	tokens *auth.TokenIssuer, log *slog.Logger, codeLength int, codeTTL time.Duration) *PhoneAuthService {
	return &PhoneAuthService{
		repo:       repo,
		sender:     sender,
		tokens:     tokens,
		log:        log,
		codeLength: codeLength,
		codeTTL:    codeTTL,
		now:        time.Now,
	}
}

func (s *PhoneAuthService) StartVerification(ctx context.Context, phoneNumber string) (string, error) {
	if err := auth.ValidatePhoneNumber(phoneNumber); err != nil {
		return "", errors.ErrInvalidPhone
	}

	code, err := auth.GenerateCode(s.codeLength)
	if err != nil {
		return "", fmt.Errorf("code generation failed: %w", err)
	}
	// The code is only kept hashed
	hash, err := auth.HashCode(code)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	verificationID := uuid.NewString()
	pending := contract.PendingVerification{
		PhoneNumber: phoneNumber,
		CodeHash:    hash,
		ExpiresAt:   s.now().Add(s.codeTTL),
	}
	if err := s.repo.SavePending(verificationID, pending); err != nil {
		return "", err
	}

	if err := s.sender.Send(ctx, phoneNumber, code); err != nil {
		if delErr := s.repo.DeletePending(verificationID); delErr != nil {
			s.log.Warn("Could not drop undelivered verification", "error", delErr)
		}
		return "", fmt.Errorf("%w: code delivery failed: %v", errors.ErrNetwork, err)
	}

	s.log.Debug("Verification started", "verification_id", verificationID)
	return verificationID, nil
}

// ConfirmVerification checks a code. A wrong code keeps the verification
// pending until MaxCodeAttempts codes were checked; a right code consumes it.
func (s *PhoneAuthService) ConfirmVerification(ctx context.Context, verificationID, code string) (Credential, error) {
	pending, err := s.repo.GetPending(verificationID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return Credential{}, errors.ErrCodeExpired
		}
		return Credential{}, err
	}
	if !s.now().Before(pending.ExpiresAt) {
		_ = s.repo.DeletePending(verificationID)
		return Credential{}, errors.ErrCodeExpired
	}

	// The attempt is counted before the check, so parallel guesses share the budget
	attempts, err := s.repo.RecordAttempt(verificationID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return Credential{}, errors.ErrCodeExpired
		}
		return Credential{}, err
	}
	if attempts > MaxCodeAttempts {
		_ = s.repo.DeletePending(verificationID)
		return Credential{}, errors.ErrCodeExpired
	}

	match, err := auth.CompareCode(code, pending.CodeHash)
	if err != nil || !match {
		if attempts == MaxCodeAttempts {
			s.log.Warn("Verification dropped after too many wrong codes", "verification_id", verificationID)
			_ = s.repo.DeletePending(verificationID)
			return Credential{}, errors.ErrCodeExpired
		}
		return Credential{}, errors.ErrBadCode
	}
	if err := s.repo.DeletePending(verificationID); err != nil {
		return Credential{}, err
	}

	uid, err := s.repo.ResolveUID(pending.PhoneNumber)
	if err != nil {
		return Credential{}, err
	}
	identity := domain.Identity{ID: uid, PhoneNumber: pending.PhoneNumber}

	token, claims, err := s.tokens.Generate(identity)
	if err != nil {
		return Credential{}, fmt.Errorf("token generation failed: %w", err)
	}

	s.log.Info("Phone verified", "uid", uid)
	return Credential{Token: token, Identity: identity, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// WhoAmI resolves a credential, rejecting expired and revoked ones.
func (s *PhoneAuthService) WhoAmI(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	revoked, err := s.repo.IsRevoked(claims.ID)
	if err != nil {
		return domain.Identity{}, err
	}
	if revoked {
		return domain.Identity{}, fmt.Errorf("%w: revoked", errors.ErrInvalidToken)
	}
	return domain.Identity{ID: claims.UserID, PhoneNumber: claims.PhoneNumber}, nil
}

// SignOut revokes a credential until its natural expiry.
func (s *PhoneAuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	if err := s.repo.Revoke(claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	s.log.Info("Signed out", "uid", claims.UserID)
	return nil
}
