package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestIsPastDate(t *testing.T) {
	loc := Location(DefaultTimezone)
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, loc)

	today, err := ParseDate(DefaultTimezone, "2025-06-10")
	require.NoError(t, err)
	yesterday, err := ParseDate(DefaultTimezone, "2025-06-09")
	require.NoError(t, err)
	tomorrow, err := ParseDate(DefaultTimezone, "2025-06-11")
	require.NoError(t, err)

	assert.False(t, IsPastDate(today, now))
	assert.True(t, IsPastDate(yesterday, now))
	assert.False(t, IsPastDate(tomorrow, now))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("", "10/06/2025")
	assert.Error(t, err)
}
