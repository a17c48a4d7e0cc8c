package main

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// serverConfig is read from the environment at startup.
type serverConfig struct {
	// ListenMode selects the transport: "tcp" or "vsock".
	ListenMode string `env:"AUCTION_LISTEN_MODE" envDefault:"tcp"`
	Port       uint32 `env:"AUCTION_PORT" envDefault:"5000"`
	MaxWorkers int    `env:"AUCTION_MAX_WORKERS" envDefault:"8"`

	// House identity and tunables.
	Owner                     string   `env:"AUCTION_OWNER,required"`
	Admins                    []string `env:"AUCTION_ADMINS" envSeparator:","`
	TimeBuffer                uint64   `env:"AUCTION_TIME_BUFFER" envDefault:"300"`
	ReservePrice              uint64   `env:"AUCTION_RESERVE_PRICE" envDefault:"100"`
	MinBidIncrementPercentage uint64   `env:"AUCTION_MIN_BID_INCREMENT_PCT" envDefault:"5"`
	Duration                  uint64   `env:"AUCTION_DURATION" envDefault:"3600"`

	// SweepIntervalSec > 0 enables the settlement sweeper.
	SweepIntervalSec int `env:"AUCTION_SWEEP_INTERVAL_SEC" envDefault:"0"`
}

func loadConfig() (*serverConfig, error) {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.ListenMode != "tcp" && cfg.ListenMode != "vsock" {
		return nil, fmt.Errorf("invalid AUCTION_LISTEN_MODE %q (must be tcp or vsock)", cfg.ListenMode)
	}
	if cfg.MaxWorkers < 1 {
		return nil, fmt.Errorf("invalid AUCTION_MAX_WORKERS %d (must be >= 1)", cfg.MaxWorkers)
	}
	return &cfg, nil
}
