package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-12")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("12.08.2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 8, 12, 15, 4, 5, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), DateOnly(in))

	// 幂等
	assert.Equal(t, DateOnly(in), DateOnly(DateOnly(in)))
}

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(42), MustParseUint("42"))
	assert.Equal(t, uint(0), MustParseUint("not-a-number"))
	assert.Equal(t, uint(0), MustParseUint("-1"))
}
