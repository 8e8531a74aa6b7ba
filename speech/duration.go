package speech

import (
	"math"
	"strconv"
	"strings"
)

// ticksPerMillisecond converts the provider's 100-nanosecond tick unit.
const ticksPerMillisecond = 10_000

// ticksToMillis converts a tick count to milliseconds by integer division.
func ticksToMillis(ticks int64) int64 {
	return ticks / ticksPerMillisecond
}

// parseISODurationMillis parses the PT#H#M#S subset of ISO-8601 durations
// the provider emits. Any subset of components may be present and the
// seconds component may be fractional ("PT1M5.5S" is 65500ms). Returns
// false for anything else.
func parseISODurationMillis(s string) (int64, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(v, "PT") {
		return 0, false
	}
	v = strings.TrimPrefix(v, "PT")

	var totalMs float64
	var num strings.Builder
	for _, r := range v {
		if (r >= '0' && r <= '9') || r == '.' {
			num.WriteRune(r)
			continue
		}
		f, err := strconv.ParseFloat(num.String(), 64)
		if err != nil {
			return 0, false
		}
		switch r {
		case 'H':
			totalMs += f * 3_600_000
		case 'M':
			totalMs += f * 60_000
		case 'S':
			totalMs += f * 1_000
		default:
			return 0, false
		}
		num.Reset()
	}
	// trailing digits without a unit designator
	if num.Len() != 0 {
		return 0, false
	}
	return int64(math.Round(totalMs)), true
}
