package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/ledgerwire/internal/client"
	"github.com/danmuck/ledgerwire/internal/config"
)

// ledgerctl config.toml key mapping to client settings.
type fileConfig struct {
	Address         string `toml:"address"`
	Cluster         string `toml:"cluster"`
	Release         string `toml:"release"`
	ClientID        string `toml:"client_id"`
	ConnectTimeout  string `toml:"connect_timeout"`
	RequestTimeout  string `toml:"request_timeout"`
	MaxMessageSize  int    `toml:"max_message_size"`
	VerifyChecksums bool   `toml:"verify_checksums"`
	MetricsListen   string `toml:"metrics_listen"`
}

type cliConfig struct {
	Client        client.Config
	MetricsListen string
}

func defaultCLIConfig() cliConfig {
	return cliConfig{Client: client.DefaultConfig()}
}

// ledgerctl loader for TOML config with default overlay. An empty path
// yields defaults.
func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if err := config.ValidateFile(path); err != nil {
		return cliConfig{}, fmt.Errorf("load ledgerctl config: %w", err)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load ledgerctl config: %w", err)
	}

	if meta.IsDefined("address") {
		cfg.Client.Address = strings.TrimSpace(raw.Address)
	}
	if meta.IsDefined("cluster") {
		if cfg.Client.Cluster, err = config.ParseID("cluster", raw.Cluster); err != nil {
			return cliConfig{}, err
		}
	}
	if meta.IsDefined("release") {
		if cfg.Client.Release, err = config.ParseRelease(raw.Release); err != nil {
			return cliConfig{}, err
		}
	}
	if meta.IsDefined("client_id") {
		if cfg.Client.ClientID, err = config.ParseID("client_id", raw.ClientID); err != nil {
			return cliConfig{}, err
		}
	}
	if meta.IsDefined("connect_timeout") {
		if cfg.Client.ConnectTimeout, err = config.ParseDuration("connect_timeout", raw.ConnectTimeout); err != nil {
			return cliConfig{}, err
		}
	}
	if meta.IsDefined("request_timeout") {
		if cfg.Client.RequestTimeout, err = config.ParseDuration("request_timeout", raw.RequestTimeout); err != nil {
			return cliConfig{}, err
		}
	}
	if meta.IsDefined("max_message_size") {
		cfg.Client.Limits.MaxMessageSize = raw.MaxMessageSize
	}
	if meta.IsDefined("verify_checksums") {
		cfg.Client.Limits.VerifyChecksums = raw.VerifyChecksums
	}
	if meta.IsDefined("metrics_listen") {
		cfg.MetricsListen = strings.TrimSpace(raw.MetricsListen)
	}

	if err := cfg.Client.Validate(); err != nil {
		return cliConfig{}, fmt.Errorf("load ledgerctl config: %w", err)
	}
	return cfg, nil
}
