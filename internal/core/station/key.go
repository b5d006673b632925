package station

import (
	"bytes"
	"errors"
	"fmt"
)

// MaxKeyLen is the maximum length of a station name in bytes.
const MaxKeyLen = 128

// ErrKeyTooLong is returned when a station name exceeds MaxKeyLen bytes.
// Names are rejected, never truncated.
var ErrKeyTooLong = errors.New("station name too long")

// Key is an immutable, fixed-capacity station name.
// The backing array is stored inline, so a Key never aliases the buffer it was
// built from and can be used directly as a map key. Bytes past n are always zero,
// which keeps == consistent with the name's contents.
type Key struct {
	n   uint8
	buf [MaxKeyLen]byte
}

// NewKey copies name into a Key.
func NewKey(name []byte) (Key, error) {
	if len(name) > MaxKeyLen {
		return Key{}, fmt.Errorf("%w: %d bytes (max %d)", ErrKeyTooLong, len(name), MaxKeyLen)
	}
	var k Key
	k.n = uint8(len(name))
	copy(k.buf[:], name)
	return k, nil
}

// ParseKey is NewKey for strings.
func ParseKey(name string) (Key, error) {
	return NewKey([]byte(name))
}

// MustKey is like ParseKey but panics on error. Intended for constants and tests.
func MustKey(name string) Key {
	k, err := ParseKey(name)
	if err != nil {
		panic(err)
	}
	return k
}

// Len returns the name length in bytes.
func (k Key) Len() int { return int(k.n) }

// Bytes returns a copy of the name.
func (k Key) Bytes() []byte {
	out := make([]byte, k.n)
	copy(out, k.buf[:k.n])
	return out
}

func (k Key) String() string { return string(k.buf[:k.n]) }

// Compare orders keys bytewise, returning -1, 0 or +1.
func (k Key) Compare(other Key) int {
	return bytes.Compare(k.buf[:k.n], other.buf[:other.n])
}
