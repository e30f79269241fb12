package client

import (
	"context"
	"dm-lab/auth"
	"dm-lab/infrastructure/grpc/api"
	"dm-lab/infrastructure/grpc/server"
	"dm-lab/infrastructure/storage"
	"dm-lab/services"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

// harness runs the full server stack in memory.
type harness struct {
	outbox *services.OutboxCodeSender
	dial   func(t *testing.T) *grpc.ClientConn
}

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := slog.Default()
	db := openDB(t)

	store, err := storage.NewDocumentStore(db, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	outbox := services.NewOutboxCodeSender()
	phoneAuth := services.NewPhoneAuthService(storage.NewVerificationRepository(db, log), outbox,
		auth.NewTokenIssuer("test-secret", time.Hour), log, 6, time.Minute)

	srv := server.NewGRPCServer(
		auth.NewInterceptor(phoneAuth.WhoAmI, api.PublicMethods...),
		server.NewDocumentServer(store, log),
		server.NewIdentityServer(phoneAuth, log),
	)
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return &harness{
		outbox: outbox,
		dial: func(t *testing.T) *grpc.ClientConn {
			cc, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return lis.DialContext(ctx)
			}))
			require.NoError(t, err)
			t.Cleanup(func() { _ = cc.Close() })
			return cc
		},
	}
}

// device is one client installation: a connection plus its own local cache.
type device struct {
	identity  *IdentityClient
	documents *DocumentStore
	cache     *storage.SessionCache
}

func (h *harness) newDevice(t *testing.T) *device {
	t.Helper()
	cache := storage.NewSessionCache(openDB(t), slog.Default())
	return h.deviceWithCache(t, cache)
}

func (h *harness) deviceWithCache(t *testing.T, cache *storage.SessionCache) *device {
	t.Helper()
	cc := h.dial(t)
	identity := NewIdentityClient(cc, cache, slog.Default())
	documents := NewDocumentStore(cc, identity, slog.Default(), 20*time.Millisecond)
	t.Cleanup(func() { _ = documents.Close() })
	return &device{identity: identity, documents: documents, cache: cache}
}

func (h *harness) signIn(t *testing.T, d *device, phone string) string {
	t.Helper()
	ctx := context.Background()
	verificationID, err := d.identity.StartVerification(ctx, phone)
	require.NoError(t, err)
	code, ok := h.outbox.LastCode(phone)
	require.True(t, ok)
	identity, err := d.identity.ConfirmVerification(ctx, verificationID, code)
	require.NoError(t, err)
	return identity.ID
}
