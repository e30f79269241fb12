package internal

import (
	"fmt"
	"time"
)

// Document backends of the server.
const (
	BackendBadger       = "badger"
	BackendNATS         = "nats"
	BackendEmbeddedNATS = "embedded-nats"
)

type ServerConfig struct {
	Host                   string        `env:"HOST,default=0.0.0.0"`
	Port                   int           `env:"PORT,required=true"`
	BadgerFilepath         string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel               string        `env:"LOG_LEVEL,default=INFO"`
	AuthSecret             string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration      time.Duration `env:"AUTH_TOKEN_DURATION,default=720h"`
	VerificationCodeTTL    time.Duration `env:"VERIFICATION_CODE_TTL,default=5m"`
	VerificationCodeLength int           `env:"VERIFICATION_CODE_LENGTH,default=6"`
	RestartInterval        time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ValueLogGCInterval     time.Duration `env:"VALUE_LOG_GC_INTERVAL,default=10m"`
	DocumentBackend        string        `env:"DOCUMENT_BACKEND,default=badger"`
	NATSURL                string        `env:"NATS_URL"`
	NATSStoreDir           string        `env:"NATS_STORE_DIR"`
	DebugPort              int           `env:"DEBUG_PORT"`
	ReportInterval         time.Duration `env:"REPORT_INTERVAL,default=1m"`
}

func (c ServerConfig) Validate() error {
	if len(c.AuthSecret) < 16 {
		return fmt.Errorf("AUTH_SECRET must be at least 16 characters")
	}
	if c.VerificationCodeLength < 4 {
		return fmt.Errorf("VERIFICATION_CODE_LENGTH must be at least 4, got %d", c.VerificationCodeLength)
	}
	switch c.DocumentBackend {
	case BackendBadger:
	case BackendNATS:
		if c.NATSURL == "" {
			return fmt.Errorf("NATS_URL is required with DOCUMENT_BACKEND=%s", BackendNATS)
		}
	case BackendEmbeddedNATS:
		if c.NATSStoreDir == "" {
			return fmt.Errorf("NATS_STORE_DIR is required with DOCUMENT_BACKEND=%s", BackendEmbeddedNATS)
		}
	default:
		return fmt.Errorf("unknown DOCUMENT_BACKEND %q", c.DocumentBackend)
	}
	return nil
}

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type ClientConfig struct {
	ServerAddr         string        `env:"CHAT_SERVER_ADDR,default=localhost:50051"`
	LogLevel           string        `env:"LOG_LEVEL,default=WARN"`
	BadgerFilepath     string        `env:"CLIENT_BADGER_FILEPATH,default=.dm-lab"`
	ReconnectInterval  time.Duration `env:"RECONNECT_INTERVAL,default=1s"`
	RevalidateOnResume bool          `env:"REVALIDATE_ON_RESUME,default=false"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
}
