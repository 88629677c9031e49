package subtitle

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// returned when a start-time field does not match H:MM:SS.ff
var ErrInvalidTimecode = errors.New("invalid timecode")

var timecodeRegex = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})\.(\d{1,2})`)

// ParseTimecode parses an ASS timecode (H:MM:SS.f or H:MM:SS.ff) and
// returns its mm:ss.cc rendering together with the total seconds.
// A single fractional digit is tenths.
func ParseTimecode(ts string) (string, float64, error) {
	m := timecodeRegex.FindStringSubmatch(strings.TrimSpace(ts))
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidTimecode, ts)
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return "", 0, fmt.Errorf("%w: hours %q: %v", ErrInvalidTimecode, m[1], err)
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	// right-pad so "5" means 50 hundredths
	frac := m[4]
	if len(frac) == 1 {
		frac += "0"
	}
	centis, _ := strconv.Atoi(frac)

	total := float64(hours)*3600 +
		float64(minutes)*60 +
		float64(seconds) +
		float64(centis)/100.0

	return FormatSeconds(total), total, nil
}

// FormatSeconds renders a non-negative duration in seconds as mm:ss.cc.
// Minutes are not wrapped into hours.
func FormatSeconds(total float64) string {
	minutes, seconds, hundredths := splitSeconds(total)
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, hundredths)
}

// hundredths round half to even; a rounded 100 carries into seconds and
// a resulting 60 carries into minutes
func splitSeconds(total float64) (int, int, int) {
	if total < 0 {
		total = 0
	}

	minutes := int(math.Floor(total / 60))
	seconds := int(math.Floor(math.Mod(total, 60)))
	hundredths := int(math.RoundToEven((total - math.Floor(total)) * 100))

	if hundredths >= 100 {
		hundredths -= 100
		seconds++
	}
	if seconds >= 60 {
		seconds -= 60
		minutes++
	}

	return minutes, seconds, hundredths
}
