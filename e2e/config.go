//go:build e2e

package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_LISTEN_ADDR is where the in-process server listens
	ListenAddr string `envconfig:"E2E_LISTEN_ADDR" default:"127.0.0.1:0"`
	// E2E_BACKEND selects the document store behind the server: badger or embedded-nats
	Backend string `envconfig:"E2E_BACKEND" default:"badger"`
	// E2E_DEBUG_JSON allows dumping full gRPC request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
