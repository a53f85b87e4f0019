package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound1(t *testing.T) {
	assert.Equal(t, 7.3, Round1(7.25))
	assert.Equal(t, 7.2, Round1(7.24))
	assert.Equal(t, 0.0, Round1(0))
	assert.Equal(t, -3.1, Round1(-3.14))

	// rounding an already-rounded value must not move it
	assert.Equal(t, 7.3, Round1(Round1(7.25)))
	assert.Equal(t, 6.7, Round1(Round1(6.66)))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-5", "1.5"} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "1999-03-31", FormatDate(time.Date(1999, 3, 31, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", FormatDate(time.Time{}))
}
