// Package checksum provides the 128-bit MAC used for header and body integrity.
//
// The ledger computes checksums as AEGIS-128L with an all-zero key and nonce,
// feeding the message as associated data with an empty plaintext; the 16-byte
// tag is the checksum, stored on the wire in the order the cipher emits it.
package checksum

import (
	"crypto/cipher"
	"fmt"
	"sync"

	"github.com/aegis-aead/go-libaegis/aegis128l"
)

// Size is the digest length in bytes.
const Size = 16

const keySize = 16

// Provider computes a 128-bit MAC over an arbitrary byte span.
type Provider interface {
	Sum(p []byte) [Size]byte
}

// Aegis128L is the ledger's checksum primitive.
type Aegis128L struct {
	aead  cipher.AEAD
	nonce []byte
}

func NewAegis128L() (*Aegis128L, error) {
	key := make([]byte, keySize)
	aead, err := aegis128l.New(key, Size)
	if err != nil {
		return nil, fmt.Errorf("checksum: init aegis128l: %w", err)
	}
	return &Aegis128L{aead: aead, nonce: make([]byte, aead.NonceSize())}, nil
}

func (a *Aegis128L) Sum(p []byte) [Size]byte {
	var out [Size]byte
	tag := a.aead.Seal(out[:0], a.nonce, nil, p)
	if len(tag) != Size {
		panic(fmt.Sprintf("checksum: unexpected tag length %d", len(tag)))
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultProvider *Aegis128L
)

// Default returns the process-wide AEGIS-128L provider.
func Default() Provider {
	defaultOnce.Do(func() {
		p, err := NewAegis128L()
		if err != nil {
			panic(err)
		}
		defaultProvider = p
	})
	return defaultProvider
}

// Sum computes the checksum of p with the default provider.
func Sum(p []byte) [Size]byte {
	return Default().Sum(p)
}
