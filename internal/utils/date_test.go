package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("19:05")
	require.NoError(t, err)
	assert.Equal(t, 19, hour)
	assert.Equal(t, 5, minute)

	for _, bad := range []string{"", "19", "24:00", "12:60", "-1:30", "ab:cd", "1:2:3"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", d.String())

	_, err = ParseDate("28/08/2026")
	assert.Error(t, err)
}
