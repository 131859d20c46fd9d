package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/ledgerwire/internal/client"
	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/header"
)

func TestLoadCLIConfigOverrides(t *testing.T) {
	cfg, err := loadCLIConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Client.Address != "127.0.0.1:3001" {
		t.Fatalf("unexpected address: %q", cfg.Client.Address)
	}
	if cfg.Client.Cluster != protocol.U128(42) {
		t.Fatalf("unexpected cluster: %v", cfg.Client.Cluster)
	}
	if cfg.Client.Release != header.Release(0, 16, 4) {
		t.Fatalf("unexpected release: %#x", cfg.Client.Release)
	}
	if cfg.Client.ClientID != protocol.U128(12345) {
		t.Fatalf("unexpected client id: %v", cfg.Client.ClientID)
	}
	if cfg.Client.ConnectTimeout != 2*time.Second || cfg.Client.RequestTimeout != 750*time.Millisecond {
		t.Fatalf("unexpected timeouts: %v %v", cfg.Client.ConnectTimeout, cfg.Client.RequestTimeout)
	}
	if cfg.Client.Limits.MaxMessageSize != 65536 || cfg.Client.Limits.VerifyChecksums {
		t.Fatalf("unexpected limits: %+v", cfg.Client.Limits)
	}
	if cfg.MetricsListen != "127.0.0.1:9464" {
		t.Fatalf("unexpected metrics listen: %q", cfg.MetricsListen)
	}
}

func TestLoadCLIConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("address = \"10.0.0.1:3000\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := client.DefaultConfig()
	if cfg.Client.Address != "10.0.0.1:3000" {
		t.Fatalf("unexpected address: %q", cfg.Client.Address)
	}
	if cfg.Client.RequestTimeout != def.RequestTimeout || cfg.Client.Limits != def.Limits {
		t.Fatalf("defaults not preserved: %+v", cfg.Client)
	}

	empty, err := loadCLIConfig("")
	if err != nil || empty.Client.Address != def.Address {
		t.Fatalf("empty path: %+v %v", empty, err)
	}
}

func TestLoadCLIConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("adress = \"10.0.0.1:3000\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadCLIConfig(path); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}
