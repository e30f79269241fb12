package main

import (
	"context"
	"dm-lab/contract"
	"dm-lab/domain"
	"dm-lab/errors"
	"dm-lab/infrastructure/grpc/client"
	"dm-lab/infrastructure/storage"
	"dm-lab/internal"
	"dm-lab/repositories"
	"dm-lab/services"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

var errLoggedOut = stderrors.New("not logged in, run: dm login --phone=<+number> --name=<name>")

func loadConfig() (internal.ClientConfig, error) {
	_ = godotenv.Load()
	var config internal.ClientConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return internal.ClientConfig{}, fmt.Errorf("config error: %w", err)
	}
	return config, nil
}

// app holds one client installation: the local cache, the connection
// and the components built on top of them.
type app struct {
	config    internal.ClientConfig
	log       *slog.Logger
	db        *badger.DB
	cc        *grpc.ClientConn
	documents *client.DocumentStore
	identity  *client.IdentityClient
	profiles  contract.IProfileDirectory
	session   *services.SessionService
	roster    services.IRosterService
	chats     contract.IConversationStore
}

func newApp(config internal.ClientConfig) (*app, error) {
	log := logs.GetLoggerFromString(config.LogLevel)

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open local cache %s: %w", config.BadgerFilepath, err)
	}
	cc, err := client.Dial(config.ServerAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cache := storage.NewSessionCache(db, log)
	identity := client.NewIdentityClient(cc, cache, log)
	documents := client.NewDocumentStore(cc, identity, log, config.ReconnectInterval)
	profiles := repositories.NewProfileRepository(documents, log)

	session := services.NewSessionService(identity, profiles, cache, log,
		services.WithRevalidateOnResume(config.RevalidateOnResume))

	return &app{
		config:    config,
		log:       log,
		db:        db,
		cc:        cc,
		documents: documents,
		identity:  identity,
		profiles:  profiles,
		session:   session,
		roster:    services.NewRosterService(profiles, log),
		chats:     repositories.NewConversationRepository(documents, log),
	}, nil
}

func (a *app) Close() error {
	_ = a.documents.Close()
	_ = a.cc.Close()
	return a.db.Close()
}

// requireSession resumes the persisted session or fails with a hint to log in.
func (a *app) requireSession(ctx context.Context) (domain.Session, error) {
	session, err := a.session.CheckPersistedSession(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if !session.IsAuthenticated() {
		return domain.Session{}, errLoggedOut
	}
	return session, nil
}

func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// describe turns a typed failure into a user-facing sentence.
func describe(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrInvalidInput):
		return fmt.Sprintf("invalid input: %v", err)
	case stderrors.Is(err, errors.ErrVerificationFailed):
		return "wrong or expired code"
	case stderrors.Is(err, errors.ErrNotAuthenticated), stderrors.Is(err, errors.ErrInvalidToken):
		return errLoggedOut.Error()
	case stderrors.Is(err, errors.ErrNetwork), stderrors.Is(err, errors.ErrFetch):
		return fmt.Sprintf("server unreachable: %v", err)
	default:
		return err.Error()
	}
}
