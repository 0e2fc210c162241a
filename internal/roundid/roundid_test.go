package roundid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	id := New(time.Now())
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestNewUnique(t *testing.T) {
	t.Parallel()

	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New(now)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSortsByTime(t *testing.T) {
	t.Parallel()

	base := time.UnixMilli(1_700_000_000_000)
	var prev string
	for i := 0; i < 10; i++ {
		id := New(base.Add(time.Duration(i) * time.Millisecond))
		if prev != "" {
			assert.Less(t, prev, id)
		}
		prev = id
	}
}

func TestDeterministicWithFixedBytes(t *testing.T) {
	t.Parallel()

	zeros := func(b []byte) {
		for i := range b {
			b[i] = 0
		}
	}
	now := time.UnixMilli(0)

	a := newWith(now, zeros)
	b := newWith(now, zeros)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "0000000000"), a)
	require.NoError(t, Validate(a))
}

func TestEncode(t *testing.T) {
	t.Parallel()

	var all [16]byte
	for i := range all {
		all[i] = 0xff
	}
	assert.Equal(t, "7"+strings.Repeat("z", 25), encode(all))
	assert.Equal(t, strings.Repeat("0", 26), encode([16]byte{}))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"upper case", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
