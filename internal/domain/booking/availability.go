package booking

import "fmt"

const (
	gridFirstHour = 8
	gridLastHour  = 18
)

var grid = buildGrid()

// buildGrid emits HH:00 and HH:30 for every hour from 08 to 18 inclusive,
// so 18:30 is the last bookable slot.
func buildGrid() []string {
	out := make([]string, 0, (gridLastHour-gridFirstHour+1)*2)
	for h := gridFirstHour; h <= gridLastHour; h++ {
		for _, m := range []int{0, 30} {
			out = append(out, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return out
}

// Grid returns a copy of the daily slot grid in chronological order.
func Grid() []string {
	return append([]string(nil), grid...)
}

// IsGridSlot reports whether t is exactly one of the grid strings.
func IsGridSlot(t string) bool {
	for _, s := range grid {
		if s == t {
			return true
		}
	}
	return false
}

// AvailableSlots is the grid minus taken, compared by exact string.
// Service duration is not taken into account.
func AvailableSlots(taken []string) []string {
	set := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		set[t] = struct{}{}
	}

	out := make([]string, 0, len(grid))
	for _, s := range grid {
		if _, busy := set[s]; !busy {
			out = append(out, s)
		}
	}
	return out
}

func contains(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
