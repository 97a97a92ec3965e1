package period

import (
	"fmt"
	"time"
)

// Period is a half-month collection window: first_half covers calendar
// days 1-15, second_half day 16 through month end.
type Period string

const (
	FirstHalf  Period = "first_half"
	SecondHalf Period = "second_half"
)

// Parse validates a period label.
func Parse(s string) (Period, error) {
	switch Period(s) {
	case FirstHalf, SecondHalf:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q (want first_half or second_half)", s)
}

// Detect infers the period currently being collected from a reference
// date. Submissions for a half keep arriving for a few days after it
// ends, so days 1-5 still belong to the first-half intake.
func Detect(ref time.Time) Period {
	if ref.Day() <= 5 {
		return FirstHalf
	}
	return SecondHalf
}

// TagFor returns the period a work date itself falls in.
func TagFor(d time.Time) Period {
	if d.Day() <= 15 {
		return FirstHalf
	}
	return SecondHalf
}

// LastDay returns the last calendar day of the month, leap-year aware.
func LastDay(year int, month time.Month) int {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}

// CollectionWindow returns the inclusive [start, end] date range whose
// messages feed the given period, relative to ref.
//
// first_half collects from day 20 of the previous month through day 5
// of ref's month; second_half collects ref's whole month. The previous
// month is computed with calendar arithmetic so a January reference
// lands on the prior December correctly.
func CollectionWindow(ref time.Time, p Period) (time.Time, time.Time) {
	y, m, _ := ref.Date()
	loc := ref.Location()
	if p == FirstHalf {
		prev := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1)
		start := time.Date(prev.Year(), prev.Month(), 20, 0, 0, 0, 0, loc)
		end := time.Date(y, m, 5, 0, 0, 0, 0, loc)
		return start, end
	}
	start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	end := time.Date(y, m, LastDay(y, m), 0, 0, 0, 0, loc)
	return start, end
}

// Anchor resolves which month a day-only submission row belongs to.
// During the first-half intake (days 1-5) and the pre-month window
// (day 20 onward) the target is the first half; from day 20 the rows
// describe the coming month.
func Anchor(ref time.Time) (int, time.Month, Period) {
	y, m, _ := ref.Date()
	switch {
	case ref.Day() <= 5:
		return y, m, FirstHalf
	case ref.Day() >= 20:
		next := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 1, 0)
		return next.Year(), next.Month(), FirstHalf
	default:
		return y, m, SecondHalf
	}
}

// HalfRange returns the inclusive roster day range for a period of the
// given month: days 1-15 or 16 through month end.
func HalfRange(year int, month time.Month, p Period) (time.Time, time.Time) {
	if p == FirstHalf {
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, month, 16, 0, 0, 0, 0, time.UTC),
		time.Date(year, month, LastDay(year, month), 0, 0, 0, 0, time.UTC)
}

// FileStem builds the output name fragment for a roster range, e.g.
// "shift_202505_16-31".
func FileStem(first, last time.Time) string {
	return fmt.Sprintf("shift_%04d%02d_%02d-%02d",
		first.Year(), first.Month(), first.Day(), last.Day())
}
