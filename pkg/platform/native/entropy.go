package native

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Entropy seeds RANDOMIZE with no argument from the OS CSPRNG, falling
// back to the wall clock if the CSPRNG is unreadable (a condition the
// xorshift64* generator that consumes this seed does not itself need to
// be cryptographically strong against, since it is an educational RNG,
// not a security primitive).
type Entropy struct{}

func (Entropy) Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err == nil {
		return int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return time.Now().UnixNano()
}
