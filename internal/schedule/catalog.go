// Package schedule defines the bookable slot catalog and the calendar
// rules shared by the availability resolver and the booking wizard.
package schedule

import "time"

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// catalog is every bookable half-hour of a business day: 9:00 to 17:00
// with the 12:00-13:00 lunch hour excluded. Ascending, fixed.
var catalog = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// AllSlots returns the catalog in ascending time order. Callers get a
// copy so the catalog stays immutable.
func AllSlots() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// IsSlot reports whether t is one of the catalog's slot values.
func IsSlot(t string) bool {
	for _, s := range catalog {
		if s == t {
			return true
		}
	}
	return false
}

// ParseDate parses a strict YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBookable reports whether d is selectable in the wizard: not a
// weekend and not before today. Both arguments are compared as bare
// calendar dates in the caller's clock.
func IsBookable(d, today time.Time) bool {
	if IsWeekend(d) {
		return false
	}
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return !day(d).Before(day(today))
}
