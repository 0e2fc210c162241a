// Package roundid generates sortable identifiers for played rounds so log
// lines belonging to one round can be correlated.
package roundid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of every generated id
const Length = 26

// New returns an id whose leading characters encode now in milliseconds, so
// ids sort by the time the round started.
func New(now time.Time) string {
	return newWith(now, func(b []byte) {
		if _, err := rand.Read(b); err != nil {
			panic("failed to generate random bytes: " + err.Error())
		}
	})
}

func newWith(now time.Time, fill func([]byte)) string {
	var id [16]byte

	// 48-bit millisecond timestamp, then random bits with the UUIDv7
	// version and variant set.
	ms := now.UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}
	fill(id[6:])
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return encode(id)
}

// encode writes 128 bits as 26 base32 characters. The first character only
// carries three bits.
func encode(data [16]byte) string {
	var b strings.Builder
	b.Grow(Length)

	var acc uint32
	bits := 2 // two zero pad bits make 130, a multiple of five
	for _, c := range data {
		acc = acc<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			b.WriteByte(alphabet[(acc>>bits)&0x1f])
		}
	}
	return b.String()
}

// Validate checks that id looks like something New produced
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round id first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
