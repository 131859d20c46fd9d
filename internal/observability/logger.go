package observability

import (
	"time"

	"github.com/rs/zerolog"
)

// LogRequest emits one line per client round trip. Failures log at error,
// replies carrying per-record failures at warn.
func LogRequest(logger zerolog.Logger, operation string, request uint32, failures int, duration time.Duration, err error) {
	event := logger.Debug()
	if err != nil {
		event = logger.Error().Err(err)
	} else if failures > 0 {
		event = logger.Warn()
	}

	event.
		Str("operation", operation).
		Uint32("request", request).
		Int("failures", failures).
		Dur("duration", duration).
		Msg("ledger_request")
}
