package schedule

import (
	"time"

	"github.com/creatorstation/reelstudio/internal/config"
)

// Closest picks the slot nearest to t's time of day. Ties go to the slot
// listed first.
func Closest(slots []config.Slot, t time.Time) config.Slot {
	at := t.Hour()*60 + t.Minute()

	best := slots[0]
	bestDiff := abs(best.Hour*60 + best.Minute - at)
	for _, s := range slots[1:] {
		if d := abs(s.Hour*60 + s.Minute - at); d < bestDiff {
			best, bestDiff = s, d
		}
	}
	return best
}

// Optimize moves t to the closest slot on the same calendar date in loc.
func Optimize(slots []config.Slot, t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	slot := Closest(slots, local)
	return time.Date(local.Year(), local.Month(), local.Day(), slot.Hour, slot.Minute, 0, 0, loc)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
