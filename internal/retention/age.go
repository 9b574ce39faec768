package retention

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxAgeDays caps calendar ages at 10000 years.
const maxAgeDays = 3652500

var clockUnits = map[string]time.Duration{
	"second": time.Second,
	"sec":    time.Second,
	"minute": time.Minute,
	"min":    time.Minute,
	"hour":   time.Hour,
}

// calendarDays is the longest span, in days, one step of each unit can cover.
var calendarDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 31,
	"year":  366,
}

// ErrInvalidAge is returned for ages ParseAge does not understand.
var ErrInvalidAge = errors.New("invalid prune age")

// ParseAge resolves a relative age such as "30 days ago" or "2 weeks ago" against now.
// The trailing "ago" is optional. Go duration strings ("336h") are accepted as well.
func ParseAge(value string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	s = strings.TrimSpace(strings.TrimSuffix(s, "ago"))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAge, value)
	}

	fields := strings.Fields(s)
	if len(fields) == 1 {
		d, err := time.ParseDuration(fields[0])
		if err != nil || d < 0 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAge, value)
		}
		return now.Add(-d), nil
	}
	if len(fields) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAge, value)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAge, value)
	}

	unit := strings.TrimSuffix(fields[1], "s")
	if d, ok := clockUnits[unit]; ok {
		if int64(n) > math.MaxInt64/int64(d) {
			return time.Time{}, fmt.Errorf("%w: %q is out of range", ErrInvalidAge, value)
		}
		return now.Add(-time.Duration(n) * d), nil
	}

	days, ok := calendarDays[unit]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown unit in %q", ErrInvalidAge, value)
	}
	if n > maxAgeDays/days {
		return time.Time{}, fmt.Errorf("%w: %q is out of range", ErrInvalidAge, value)
	}

	var cutoff time.Time
	switch unit {
	case "day":
		cutoff = now.AddDate(0, 0, -n)
	case "week":
		cutoff = now.AddDate(0, 0, -7*n)
	case "month":
		cutoff = now.AddDate(0, -n, 0)
	case "year":
		cutoff = now.AddDate(-n, 0, 0)
	}
	if cutoff.After(now) {
		return time.Time{}, fmt.Errorf("%w: %q is out of range", ErrInvalidAge, value)
	}
	return cutoff, nil
}
