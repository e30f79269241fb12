package client

import (
	"context"
	"dm-lab/contract"
	"dm-lab/domain"
	"dm-lab/errors"
	"dm-lab/infrastructure/grpc/api"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// CredentialKey is the session cache key holding the signed-in credential.
const CredentialKey = "credential"

type storedCredential struct {
	Token       string `json:"token"`
	UID         string `json:"uid"`
	PhoneNumber string `json:"phoneNumber"`
	ExpiresAt   string `json:"expiresAt"`
}

// IdentityClient is the remote identity provider. It owns the credential:
// persisted in the session cache so a restart resumes the sign-in, and
// attached to outgoing calls as a bearer token.
type IdentityClient struct {
	api   api.IdentityClient
	cache contract.ISessionCache
	log   *slog.Logger

	mu     sync.RWMutex
	token  string
	loaded bool
}

func NewIdentityClient(cc grpc.ClientConnInterface, cache contract.ISessionCache, log *slog.Logger) *IdentityClient {
	return &IdentityClient{api: api.NewIdentityClient(cc), cache: cache, log: log}
}

func (c *IdentityClient) StartVerification(ctx context.Context, phoneNumber string) (string, error) {
	res, err := c.api.StartVerification(ctx, &structpb.Struct{Fields: map[string]*structpb.Value{
		"phoneNumber": structpb.NewStringValue(phoneNumber),
	}})
	if err != nil {
		return "", errors.FromGRPCError(err)
	}
	return res.GetFields()["verificationId"].GetStringValue(), nil
}

func (c *IdentityClient) ConfirmVerification(ctx context.Context, verificationID, code string) (domain.Identity, error) {
	res, err := c.api.ConfirmVerification(ctx, &structpb.Struct{Fields: map[string]*structpb.Value{
		"verificationId": structpb.NewStringValue(verificationID),
		"code":           structpb.NewStringValue(code),
	}})
	if err != nil {
		return domain.Identity{}, errors.FromGRPCError(err)
	}

	fields := res.GetFields()
	stored := storedCredential{
		Token:       fields["token"].GetStringValue(),
		UID:         fields["uid"].GetStringValue(),
		PhoneNumber: fields["phoneNumber"].GetStringValue(),
		ExpiresAt:   fields["expiresAt"].GetStringValue(),
	}
	if stored.Token == "" || stored.UID == "" {
		return domain.Identity{}, fmt.Errorf("%w: incomplete credential", errors.ErrVerificationFailed)
	}

	c.setToken(stored.Token)
	if raw, err := json.Marshal(stored); err == nil {
		if err := c.cache.Set(ctx, CredentialKey, string(raw)); err != nil {
			c.log.Warn("Credential kept in memory only", "error", err)
		}
	}
	return domain.Identity{ID: stored.UID, PhoneNumber: stored.PhoneNumber}, nil
}

// CurrentIdentity asks the server who the credential belongs to. A missing
// credential is not an error. A rejected one is forgotten.
func (c *IdentityClient) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	if c.currentToken(ctx) == "" {
		return nil, nil
	}
	res, err := c.api.WhoAmI(ctx, &emptypb.Empty{}, grpc.PerRPCCredentials(c))
	if err != nil {
		err = errors.FromGRPCError(err)
		if stderrors.Is(err, errors.ErrInvalidToken) {
			c.forget(ctx)
			return nil, nil
		}
		return nil, err
	}
	return &domain.Identity{
		ID:          res.GetFields()["uid"].GetStringValue(),
		PhoneNumber: res.GetFields()["phoneNumber"].GetStringValue(),
	}, nil
}

// SignOut revokes the credential server-side. Local state is cleared even
// when the server cannot be reached.
func (c *IdentityClient) SignOut(ctx context.Context) error {
	if c.currentToken(ctx) == "" {
		return nil
	}
	_, err := c.api.SignOut(ctx, &emptypb.Empty{}, grpc.PerRPCCredentials(c))
	c.forget(ctx)
	if err != nil {
		err = errors.FromGRPCError(err)
		if stderrors.Is(err, errors.ErrInvalidToken) {
			return nil
		}
		return err
	}
	return nil
}

func (c *IdentityClient) GetRequestMetadata(ctx context.Context, _ ...string) (map[string]string, error) {
	token := c.currentToken(ctx)
	if token == "" {
		return map[string]string{}, nil
	}
	return map[string]string{"authorization": "Bearer " + token}, nil
}

// RequireTransportSecurity is false: the server is reached over plaintext
// on a trusted network.
func (c *IdentityClient) RequireTransportSecurity() bool {
	return false
}

func (c *IdentityClient) currentToken(ctx context.Context) string {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.token
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.token
	}
	raw, err := c.cache.Get(ctx, CredentialKey)
	if err != nil {
		c.log.Warn("Failed to read stored credential", "error", err)
		return ""
	}
	c.loaded = true
	if raw == nil {
		return ""
	}
	var stored storedCredential
	if err := json.Unmarshal([]byte(*raw), &stored); err != nil {
		c.log.Warn("Discarding malformed stored credential", "error", err)
		return ""
	}
	c.token = stored.Token
	return c.token
}

func (c *IdentityClient) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.loaded = true
}

func (c *IdentityClient) forget(ctx context.Context) {
	c.setToken("")
	if err := c.cache.Remove(ctx, CredentialKey); err != nil {
		c.log.Warn("Failed to remove stored credential", "error", err)
	}
}

var (
	_ contract.IIdentityStore       = (*IdentityClient)(nil)
	_ credentials.PerRPCCredentials = (*IdentityClient)(nil)
	_ contract.IDocumentStore       = (*DocumentStore)(nil)
)
