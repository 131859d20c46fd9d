// Package ids mints client and record identifiers.
package ids

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/segmentio/ksuid"
)

// ClientID returns a random, non-zero client id and the KSUID it was drawn
// from, which is the form logged for correlation.
func ClientID() (protocol.Uint128, string) {
	for {
		k := ksuid.New()
		id := protocol.GetUint128(k.Payload())
		if !id.IsZero() {
			return id, k.String()
		}
	}
}

// Generator produces time-ordered 128-bit ids: a 48-bit millisecond
// timestamp in the high bits and 80 random bits below it. Ids from one
// generator increase strictly, including within a millisecond.
type Generator struct {
	mu     sync.Mutex
	now    func() time.Time
	lastMs uint64
	hi     uint16
	lo     uint64
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

func (g *Generator) Next() protocol.Uint128 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := uint64(g.now().UnixMilli()) & (1<<48 - 1)
	if ms <= g.lastMs {
		// Same millisecond or a clock step back: bump the random part.
		g.lo++
		if g.lo == 0 {
			g.hi++
			if g.hi == 0 {
				g.lastMs++
			}
		}
	} else {
		g.lastMs = ms
		var b [10]byte
		rand.Read(b[:])
		g.hi = binary.LittleEndian.Uint16(b[0:])
		g.lo = binary.LittleEndian.Uint64(b[2:])
	}
	return protocol.Uint128{Hi: g.lastMs<<16 | uint64(g.hi), Lo: g.lo}
}

// Timestamp extracts the millisecond timestamp of an id from Next.
func Timestamp(id protocol.Uint128) time.Time {
	return time.UnixMilli(int64(id.Hi >> 16))
}
