package booking

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridShape(t *testing.T) {
	g := Grid()

	require.Len(t, g, 22)
	assert.Equal(t, "08:00", g[0])
	assert.Equal(t, "18:00", g[20])
	assert.Equal(t, "18:30", g[21])
	assert.True(t, sort.StringsAreSorted(g))
}

func TestAvailableSlotsRemovesExactlyTaken(t *testing.T) {
	got := AvailableSlots([]string{"09:00", "09:30"})

	require.Len(t, got, 20)
	assert.NotContains(t, got, "09:00")
	assert.NotContains(t, got, "09:30")
	assert.Contains(t, got, "10:00")
}

func TestAvailableSlotsProperties(t *testing.T) {
	cases := map[string][]string{
		"none taken":       nil,
		"all taken":        Grid(),
		"off grid ignored": {"07:30", "19:00", "9:00"},
		"duplicates":       {"12:00", "12:00", "12:30"},
		"edges":            {"08:00", "18:30"},
	}

	for name, taken := range cases {
		t.Run(name, func(t *testing.T) {
			got := AvailableSlots(taken)

			takenSet := map[string]bool{}
			for _, s := range taken {
				takenSet[s] = true
			}

			seen := map[string]bool{}
			for i, s := range got {
				assert.True(t, IsGridSlot(s), "slot %s not in grid", s)
				assert.False(t, takenSet[s], "slot %s is taken", s)
				assert.False(t, seen[s], "duplicate %s", s)
				seen[s] = true
				if i > 0 {
					assert.Less(t, got[i-1], s)
				}
			}

			for _, s := range Grid() {
				if !takenSet[s] {
					assert.True(t, seen[s], "free slot %s missing", s)
				}
			}
		})
	}
}

func TestAvailableSlotsIgnoresServiceDuration(t *testing.T) {
	// a 45 minute service at 09:00 still leaves 09:30 open
	got := AvailableSlots([]string{"09:00"})
	assert.Contains(t, got, "09:30")
}

func TestGridIsCopied(t *testing.T) {
	g := Grid()
	g[0] = "00:00"
	assert.Equal(t, "08:00", Grid()[0])
}
