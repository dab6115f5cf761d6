package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a clock time with no date component, the join key between
// the weather and radiation tables. The zero value is "unparseable".
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
	Valid  bool
}

// String returns the canonical HH:MM:SS form, or "" for the zero value.
func (t TimeOfDay) String() string {
	if !t.Valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// MinutesSinceMidnight is the chronological sort key.
func (t TimeOfDay) MinutesSinceMidnight() int {
	return t.Hour*60 + t.Minute
}

// timeLayouts are the formats seen on HKO tables, in priority order.
var timeLayouts = []string{
	"15:04",
	"1504",
	"15:04:05",
	"3:04 PM",
	"15",
}

// layoutOutcome is the result of applying one layout to a whole column:
// either every cell parsed, or the layout was rejected. There is no
// partial success at this stage.
type layoutOutcome struct {
	accepted bool
	times    []TimeOfDay
}

// NormalizeTimeColumn parses a column of raw time strings into canonical
// times, one per input row. Each layout is first tried strictly against
// the entire column; the first layout that parses every cell wins. If
// none does, cells are parsed leniently one by one and failures come back
// as zero-value TimeOfDay. It never returns an error; the raw strings are
// the caller's side channel.
func NormalizeTimeColumn(cells []string) []TimeOfDay {
	for _, layout := range timeLayouts {
		if outcome := tryLayout(layout, cells); outcome.accepted {
			return outcome.times
		}
	}

	out := make([]TimeOfDay, len(cells))
	for i, cell := range cells {
		out[i] = ParseTimeOfDay(cell)
	}
	return out
}

// tryLayout applies one layout to every cell. A single failure rejects
// the layout for the whole column.
func tryLayout(layout string, cells []string) layoutOutcome {
	times := make([]TimeOfDay, len(cells))
	for i, cell := range cells {
		parsed, err := time.Parse(layout, strings.TrimSpace(cell))
		if err != nil {
			return layoutOutcome{}
		}
		times[i] = fromTime(parsed)
	}
	return layoutOutcome{accepted: true, times: times}
}

// ParseTimeOfDay parses a single cell on a best-effort basis, trying each
// known layout and tolerating lowercase meridiems. Returns the zero value
// when nothing fits.
func ParseTimeOfDay(cell string) TimeOfDay {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return TimeOfDay{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, cell); err == nil {
			return fromTime(parsed)
		}
	}
	// "9:00 am" style: Go meridiem matching is case-sensitive.
	upper := strings.ToUpper(cell)
	if upper != cell {
		if parsed, err := time.Parse("3:04 PM", upper); err == nil {
			return fromTime(parsed)
		}
	}
	return TimeOfDay{}
}

func fromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Valid: true}
}
