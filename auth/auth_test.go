package auth_test

import (
	"dm-lab/auth"
	"dm-lab/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateVerification(t *testing.T) {
	tests := []struct {
		name    string
		req     auth.VerificationRequest
		wantErr bool
	}{
		{"valid", auth.VerificationRequest{PhoneNumber: "+15555555555", DisplayName: "Ann"}, false},
		{"missing plus", auth.VerificationRequest{PhoneNumber: "15555555555", DisplayName: "Ann"}, true},
		{"letters", auth.VerificationRequest{PhoneNumber: "+1555abc", DisplayName: "Ann"}, true},
		{"plus only", auth.VerificationRequest{PhoneNumber: "+", DisplayName: "Ann"}, true},
		{"spaces", auth.VerificationRequest{PhoneNumber: "+1 555 555", DisplayName: "Ann"}, true},
		{"empty name", auth.VerificationRequest{PhoneNumber: "+15555555555", DisplayName: ""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := auth.ValidateVerification(tt.req)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}

func TestValidateConfirmation(t *testing.T) {
	req := require.New(t)
	req.NoError(auth.ValidateConfirmation(auth.ConfirmationRequest{Code: "123456"}))
	req.Error(auth.ValidateConfirmation(auth.ConfirmationRequest{Code: ""}))
	req.Error(auth.ValidateConfirmation(auth.ConfirmationRequest{Code: "12a456"}))
	req.Error(auth.ValidateConfirmation(auth.ConfirmationRequest{Code: "-12"}))
}

func TestCodeHashing(t *testing.T) {
	req := require.New(t)

	// Given a generated code
	code, err := auth.GenerateCode(6)
	req.NoError(err)
	req.Len(code, 6)
	req.NoError(auth.ValidateConfirmation(auth.ConfirmationRequest{Code: code}))

	// When it is hashed
	hash, err := auth.HashCode(code)
	req.NoError(err)
	req.NotContains(hash, code)

	// Then only the same code matches
	ok, err := auth.CompareCode(code, hash)
	req.NoError(err)
	req.True(ok)

	ok, err = auth.CompareCode("000000x", hash)
	req.NoError(err)
	req.False(ok)

	_, err = auth.CompareCode(code, "not-a-hash")
	req.ErrorIs(err, auth.ErrInvalidHashFormat)

	_, err = auth.GenerateCode(0)
	req.Error(err)
}

func TestTokenIssuer(t *testing.T) {
	identity := domain.Identity{ID: "U1", PhoneNumber: "+15555555555"}

	t.Run("round trip keeps identity", func(t *testing.T) {
		req := require.New(t)
		issuer := auth.NewTokenIssuer("secret", time.Hour)

		token, issued, err := issuer.Generate(identity)
		req.NoError(err)
		req.NotEmpty(issued.ID)

		claims, err := issuer.Validate(token)
		req.NoError(err)
		req.Equal("U1", claims.UserID)
		req.Equal("+15555555555", claims.PhoneNumber)
		req.Equal(issued.ID, claims.ID)
	})

	t.Run("each token gets its own id", func(t *testing.T) {
		req := require.New(t)
		issuer := auth.NewTokenIssuer("secret", time.Hour)
		_, first, err := issuer.Generate(identity)
		req.NoError(err)
		_, second, err := issuer.Generate(identity)
		req.NoError(err)
		req.NotEqual(first.ID, second.ID)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		req := require.New(t)
		issuer := auth.NewTokenIssuer("secret", -time.Minute)
		token, _, err := issuer.Generate(identity)
		req.NoError(err)
		_, err = issuer.Validate(token)
		req.Error(err)
	})

	t.Run("foreign signature is rejected", func(t *testing.T) {
		req := require.New(t)
		token, _, err := auth.NewTokenIssuer("other", time.Hour).Generate(identity)
		req.NoError(err)
		_, err = auth.NewTokenIssuer("secret", time.Hour).Validate(token)
		req.Error(err)
	})
}
