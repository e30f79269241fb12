//go:build e2e

package e2e

import (
	"context"
	"dm-lab/auth"
	"dm-lab/contract"
	"dm-lab/infrastructure/grpc/api"
	"dm-lab/infrastructure/grpc/client"
	"dm-lab/infrastructure/grpc/server"
	"dm-lab/infrastructure/natskv"
	"dm-lab/infrastructure/storage"
	"dm-lab/internal"
	"dm-lab/repositories"
	"dm-lab/services"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// BaseGrpcSuite runs the whole server in process on a real TCP listener
// and hands out independent client installations.
type BaseGrpcSuite struct {
	suite.Suite
	Config  Config
	addr    string
	outbox  *services.OutboxCodeSender
	cleanup []func()
}

func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	log := logs.GetLoggerFromString("WARN")
	db, err := badger.Open(badger.DefaultOptions(s.T().TempDir()).WithLogger(nil))
	s.Require().NoError(err)
	s.onTeardown(func() { _ = db.Close() })

	var documents contract.IDocumentStore
	switch s.Config.Backend {
	case internal.BackendEmbeddedNATS:
		ns, err := natskv.StartEmbedded(s.T().TempDir())
		s.Require().NoError(err)
		s.onTeardown(ns.Shutdown)
		conn, js, err := natskv.Connect(ns.ClientURL())
		s.Require().NoError(err)
		s.onTeardown(conn.Close)
		store, err := natskv.NewDocumentStore(context.Background(), js, natskv.DefaultBucket, log)
		s.Require().NoError(err)
		s.onTeardown(func() { _ = store.Close() })
		documents = store
	default:
		store, err := storage.NewDocumentStore(db, log)
		s.Require().NoError(err)
		s.onTeardown(func() { _ = store.Close() })
		documents = store
	}

	s.outbox = services.NewOutboxCodeSender()
	phoneAuth := services.NewPhoneAuthService(storage.NewVerificationRepository(db, log), s.outbox,
		auth.NewTokenIssuer("e2e-secret-0123456789", time.Hour), log, 6, time.Minute)

	documentServer := server.NewDocumentServer(documents, log)
	srv := server.NewGRPCServer(
		auth.NewInterceptor(phoneAuth.WhoAmI, api.PublicMethods...),
		documentServer,
		server.NewIdentityServer(phoneAuth, log),
	)
	lis, err := net.Listen("tcp", s.Config.ListenAddr)
	s.Require().NoError(err)
	s.addr = lis.Addr().String()
	go func() { _ = srv.Serve(lis) }()
	s.onTeardown(func() {
		documentServer.Stop()
		srv.GracefulStop()
	})
}

func (s *BaseGrpcSuite) TearDownSuite() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

func (s *BaseGrpcSuite) onTeardown(fn func()) {
	s.cleanup = append(s.cleanup, fn)
}

// GrpcConn initializes a gRPC connection with logging, colors, and JSON debugging
func (s *BaseGrpcSuite) GrpcConn(t *testing.T, name string) *grpc.ClientConn {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	marshaler := protojson.MarshalOptions{
		UseProtoNames:   true,
		Multiline:       true,
		EmitUnpopulated: true,
	}

	conn, err := client.Dial(s.addr,
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))

			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, marshaler.Format(req.(proto.Message)))
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, marshaler.Format(reply.(proto.Message)))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+s.addr)
	return conn
}

// Device is one client installation with its own local cache.
type Device struct {
	Name     string
	Session  *services.SessionService
	Roster   services.IRosterService
	Chats    contract.IConversationStore
	cache    *storage.SessionCache
	shutdown func()
}

func (s *BaseGrpcSuite) NewDevice(t *testing.T, name string) *Device {
	log := logs.GetLoggerFromString("WARN")
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	s.Require().NoError(err)

	conn := s.GrpcConn(t, name)
	cache := storage.NewSessionCache(db, log)
	identity := client.NewIdentityClient(conn, cache, log)
	documents := client.NewDocumentStore(conn, identity, log, 50*time.Millisecond)
	profiles := repositories.NewProfileRepository(documents, log)

	d := &Device{
		Name:    name,
		Session: services.NewSessionService(identity, profiles, cache, log),
		Roster:  services.NewRosterService(profiles, log),
		Chats:   repositories.NewConversationRepository(documents, log),
		cache:   cache,
		shutdown: func() {
			_ = documents.Close()
			_ = conn.Close()
			_ = db.Close()
		},
	}
	t.Cleanup(d.shutdown)
	return d
}

// Login walks a device through the phone verification.
func (s *BaseGrpcSuite) Login(ctx context.Context, d *Device, phone string) string {
	_, err := d.Session.CheckPersistedSession(ctx)
	s.Require().NoError(err)
	s.Require().NoError(d.Session.RequestVerification(ctx, phone, d.Name))
	code, ok := s.outbox.LastCode(phone)
	s.Require().True(ok, "no code delivered to "+phone)
	session, err := d.Session.ConfirmVerification(ctx, code)
	s.Require().NoError(err)
	s.Require().True(session.IsAuthenticated())
	return session.IdentityID()
}
