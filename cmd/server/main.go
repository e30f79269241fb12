package main

import (
	"context"
	"dm-lab/auth"
	"dm-lab/contract"
	"dm-lab/infrastructure/grpc/api"
	"dm-lab/infrastructure/grpc/server"
	"dm-lab/infrastructure/natskv"
	"dm-lab/infrastructure/storage"
	"dm-lab/internal"
	"dm-lab/runtime/workers"
	"dm-lab/services"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// Exit codes to provide meaningful status to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const valueLogDiscardRatio = 0.5

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.ServerConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB) for identities, and documents unless NATS holds them
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Document store
	documents, closeDocuments, err := openDocumentStore(ctx, config, db, log)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		if err := closeDocuments.Close(); err != nil {
			log.Warn("Failed to close document store", "error", err)
		}
	}()

	// 4. Identity provider
	phoneAuth := services.NewPhoneAuthService(
		storage.NewVerificationRepository(db, log),
		services.NewLogCodeSender(log),
		auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration),
		log,
		config.VerificationCodeLength,
		config.VerificationCodeTTL,
	)

	// 5. gRPC Server Setup
	documentServer := server.NewDocumentServer(documents, log)
	s := server.NewGRPCServer(
		auth.NewInterceptor(phoneAuth.WhoAmI, api.PublicMethods...),
		documentServer,
		server.NewIdentityServer(phoneAuth, log),
	)
	listener, err := net.Listen("tcp", config.Address())
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.Address(), err)
	}

	if config.DebugPort > 0 {
		debug := internal.StartDebugServer(db, config.DebugPort, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = debug.Shutdown(shutdownCtx)
		}()
	}

	// 6. Periodic stats of the process and of the backend when it exposes any
	sup := workers.NewSupervisor(log, config.RestartInterval)
	if config.ReportInterval > 0 {
		providers := map[string]workers.StatsProvider{}
		if stats, ok := documents.(interface{ Stats() map[string]any }); ok {
			providers["documents"] = stats.Stats
		}
		if processStats, err := workers.NewProcessStats(log); err != nil {
			log.Warn("Process stats unavailable", "error", err)
		} else {
			providers["process"] = processStats
		}
		sup.Add(workers.NewReporterWorker(log, config.ReportInterval, providers))
	}

	// 7. Serve until a signal or a serve error
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sup.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		log.Info("Starting gRPC server", "address", config.Address(), "backend", config.DocumentBackend)
		if err := s.Serve(listener); err != nil && !stderrors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down gracefully...")
		documentServer.Stop()
		s.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return exitRuntime, err
	}
	log.Info("Server stopped cleanly")
	return exitOK, nil
}

// openDocumentStore picks the backend holding the users and chats
// collections. The returned closer releases everything it opened.
func openDocumentStore(ctx context.Context, config internal.ServerConfig, db *badger.DB, log *slog.Logger) (contract.IDocumentStore, io.Closer, error) {
	switch config.DocumentBackend {
	case internal.BackendNATS, internal.BackendEmbeddedNATS:
		url := config.NATSURL
		var shutdown func()
		if config.DocumentBackend == internal.BackendEmbeddedNATS {
			ns, err := natskv.StartEmbedded(config.NATSStoreDir)
			if err != nil {
				return nil, nil, err
			}
			url = ns.ClientURL()
			shutdown = ns.Shutdown
			log.Info("Embedded NATS started", "url", url)
		}
		conn, js, err := natskv.Connect(url)
		if err != nil {
			if shutdown != nil {
				shutdown()
			}
			return nil, nil, err
		}
		store, err := natskv.NewDocumentStore(ctx, js, natskv.DefaultBucket, log)
		if err != nil {
			conn.Close()
			if shutdown != nil {
				shutdown()
			}
			return nil, nil, fmt.Errorf("nats document store: %w", err)
		}
		return store, closerFunc(func() error {
			err := store.Close()
			conn.Close()
			if shutdown != nil {
				shutdown()
			}
			return err
		}), nil
	default:
		store, err := storage.NewDocumentStore(db, log,
			storage.WithRestartInterval(config.RestartInterval),
			storage.WithValueLogGC(config.ValueLogGCInterval, valueLogDiscardRatio))
		if err != nil {
			return nil, nil, fmt.Errorf("badger document store: %w", err)
		}
		return store, store, nil
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
