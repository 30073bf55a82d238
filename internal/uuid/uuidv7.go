// Package uuid generates the time-ordered identifiers used for holdings,
// buckets and every other primary key.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 for the current instant: a millisecond timestamp
// prefix followed by random bits.
func New() string {
	return NewAt(time.Now())
}

// NewAt generates a UUIDv7 whose timestamp prefix is t.
//
// Layout:
//   - 48 bits: Unix timestamp in milliseconds
//   - 4 bits: version (0111)
//   - 12 bits: random
//   - 2 bits: variant (10)
//   - 62 bits: random
func NewAt(t time.Time) string {
	var id [16]byte

	binary.BigEndian.PutUint64(id[0:8], uint64(t.UnixMilli())<<16)

	if _, err := rand.Read(id[6:]); err != nil {
		return googleuuid.New().String()
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return googleuuid.UUID(id).String()
}

// Timestamp returns the creation time embedded in a UUIDv7 string.
func Timestamp(s string) (time.Time, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	if parsed.Version() != 7 {
		return time.Time{}, fmt.Errorf("uuid %s is version %d, not 7", s, parsed.Version())
	}
	ms := binary.BigEndian.Uint64(append([]byte{0, 0}, parsed[0:6]...))
	return time.UnixMilli(int64(ms)), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
