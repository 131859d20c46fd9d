package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "client", "ledgerctl":
		return clientTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const clientTemplate = `address = "127.0.0.1:3000"
cluster = "0"
release = "0.16.0"
# client_id = "0x1"   # minted per process when unset
connect_timeout = "5s"
request_timeout = "15s"
max_message_size = 1048576
verify_checksums = true
# metrics_listen = "127.0.0.1:9464"
`
