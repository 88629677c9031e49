package subtitle

import (
	"cmp"
	"slices"
)

// represents single lyric entry
type Entry struct {
	Time    float64 // seconds from start of track
	Display string  // mm:ss.cc rendering of Time
	Text    string
}

// creates entry whose display string is derived from seconds
func NewEntry(seconds float64, text string) Entry {
	return Entry{
		Time:    seconds,
		Display: FormatSeconds(seconds),
		Text:    text,
	}
}

// represents supported subtitle formats
type Format string

const (
	FormatASS Format = "ass"
	FormatLRC Format = "lrc"
)

// why a Dialogue line did not produce an entry
type SkipReason string

const (
	SkipMalformed    SkipReason = "malformed"
	SkipBadTimecode  SkipReason = "bad_timecode"
	SkipEmptyPayload SkipReason = "empty_payload"
)

// dialogue line that was skipped during extraction
type Skip struct {
	Line   int
	Reason SkipReason
}

// result of scanning one script document
type Extraction struct {
	Entries []Entry
	Skipped []Skip
}

// counts skipped lines per reason
func (e Extraction) SkipCounts() map[SkipReason]int {
	counts := make(map[SkipReason]int, len(e.Skipped))
	for _, s := range e.Skipped {
		counts[s.Reason]++
	}
	return counts
}

// sorts entries ascending by time, keeping extraction order for ties
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Time, b.Time)
	})
}
