package client

import (
	"context"
	"dm-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityClient_SignInResumeSignOut(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newHarness(t)
	d := h.newDevice(t)

	// Given nobody signed in on this device
	current, err := d.identity.CurrentIdentity(ctx)
	req.NoError(err)
	req.Nil(current)

	// When alice verifies her phone
	uid := h.signIn(t, d, "+15555550001")

	// Then the server knows her
	current, err = d.identity.CurrentIdentity(ctx)
	req.NoError(err)
	req.NotNil(current)
	req.Equal(uid, current.ID)
	req.Equal("+15555550001", current.PhoneNumber)

	// And a restarted client on the same cache resumes the sign-in
	restarted := h.deviceWithCache(t, d.cache)
	current, err = restarted.identity.CurrentIdentity(ctx)
	req.NoError(err)
	req.NotNil(current)
	req.Equal(uid, current.ID)

	// When she signs out
	req.NoError(restarted.identity.SignOut(ctx))

	// Then the credential is gone locally
	stored, err := d.cache.Get(ctx, CredentialKey)
	req.NoError(err)
	req.Nil(stored)

	// And the first client's copy has been revoked server side
	current, err = d.identity.CurrentIdentity(ctx)
	req.NoError(err)
	req.Nil(current)
}

func TestIdentityClient_ConfirmVerification_BadCode(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newHarness(t)
	d := h.newDevice(t)

	verificationID, err := d.identity.StartVerification(ctx, "+15555550002")
	req.NoError(err)

	_, err = d.identity.ConfirmVerification(ctx, verificationID, "000000x")
	req.ErrorIs(err, errors.ErrBadCode)

	_, err = d.identity.ConfirmVerification(ctx, "unknown", "123456")
	req.ErrorIs(err, errors.ErrCodeExpired)
}

func TestIdentityClient_StartVerification_InvalidPhone(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	d := h.newDevice(t)

	_, err := d.identity.StartVerification(context.Background(), "5555")

	req.ErrorIs(err, errors.ErrInvalidPhone)
}

func TestIdentityClient_SignOut_WithoutCredential(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	d := h.newDevice(t)

	req.NoError(d.identity.SignOut(context.Background()))
}

func TestIdentityClient_GetRequestMetadata(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newHarness(t)
	d := h.newDevice(t)

	md, err := d.identity.GetRequestMetadata(ctx)
	req.NoError(err)
	req.Empty(md)

	h.signIn(t, d, "+15555550003")

	md, err = d.identity.GetRequestMetadata(ctx)
	req.NoError(err)
	req.Contains(md["authorization"], "Bearer ")
	req.False(d.identity.RequireTransportSecurity())
}
