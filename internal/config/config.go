package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalid = errors.New("config: invalid")

// ClientFile is the on-disk schema shared by ledgerctl and anything else that
// connects to a cluster. Durations are Go duration strings.
type ClientFile struct {
	Address         string `toml:"address"`
	Cluster         string `toml:"cluster"`
	Release         string `toml:"release"`
	ClientID        string `toml:"client_id"`
	ConnectTimeout  string `toml:"connect_timeout"`
	RequestTimeout  string `toml:"request_timeout"`
	MaxMessageSize  int    `toml:"max_message_size"`
	VerifyChecksums *bool  `toml:"verify_checksums"`
	MetricsListen   string `toml:"metrics_listen"`
}

// LoadClientFile decodes path strictly: unknown keys are errors.
func LoadClientFile(path string) (ClientFile, error) {
	var cfg ClientFile
	if err := loadToml(path, &cfg); err != nil {
		return ClientFile{}, err
	}
	if err := ValidateClientFile(cfg); err != nil {
		return ClientFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ValidateFile reports whether path holds a usable client config.
func ValidateFile(path string) error {
	_, err := LoadClientFile(path)
	return err
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config parse failed (%s): %w: %s", path, ErrInvalid, strict.String())
		}
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateClientFile(cfg ClientFile) error {
	if strings.HasPrefix(strings.TrimSpace(cfg.Address), ":") {
		return fmt.Errorf("%w: address needs a host", ErrInvalid)
	}
	if _, err := ParseID("cluster", cfg.Cluster); err != nil {
		return err
	}
	if _, err := ParseID("client_id", cfg.ClientID); err != nil {
		return err
	}
	if _, err := ParseRelease(cfg.Release); err != nil {
		return err
	}
	if _, err := ParseDuration("connect_timeout", cfg.ConnectTimeout); err != nil {
		return err
	}
	if _, err := ParseDuration("request_timeout", cfg.RequestTimeout); err != nil {
		return err
	}
	if cfg.MaxMessageSize < 0 || cfg.MaxMessageSize > protocol.MessageSizeMax {
		return fmt.Errorf("%w: max_message_size %d outside [0,%d]", ErrInvalid, cfg.MaxMessageSize, protocol.MessageSizeMax)
	}
	if cfg.MaxMessageSize != 0 && cfg.MaxMessageSize < protocol.HeaderSize {
		return fmt.Errorf("%w: max_message_size %d below header size", ErrInvalid, cfg.MaxMessageSize)
	}
	return nil
}
