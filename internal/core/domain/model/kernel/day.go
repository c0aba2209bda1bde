package kernel

import (
	"fmt"
	"time"

	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// ErrDayIsNotConstructed is returned when attempting to use an improperly initialized Day.
// Days must be created using NewDay, DayOf, or DayFromString to ensure validity.
var ErrDayIsNotConstructed = errs.NewValueIsRequiredError(
	"day must be created via NewDay, DayOf, or DayFromString constructors")

// dayFormat is the canonical string form of a Day.
const dayFormat = "2006-01-02"

// Day represents a single calendar day, independent of clock time and time zone.
// It is the unit that route ordering, change events, and digest passes are keyed by:
// two jobs belong to the same route exactly when their scheduled timestamps fall on
// the same Day in the service's configured time zone.
//
// Day is an immutable value object. The zero value is invalid and will fail
// validation - use the constructors to create instances.
//
// Example:
//
//	day, err := kernel.DayFromString("2024-06-01")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(day) // Output: 2024-06-01
type Day struct {
	year  int
	month time.Month
	day   int
	guard guard.ConstructorGuard
}

// NewDay creates a Day from explicit calendar components.
// Returns an error if the components do not form a real calendar date
// (e.g., February 30th).
func NewDay(year int, month time.Month, day int) (Day, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Day{}, errs.NewValueIsInvalidErrorWithCause("day",
			fmt.Errorf("%04d-%02d-%02d is not a valid calendar date", year, int(month), day))
	}

	return Day{
		year:  year,
		month: month,
		day:   day,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// DayOf returns the calendar day that the given instant falls on when
// observed in loc. This is the single conversion point between timestamps
// and route days; all "same day" rules in the domain go through it.
func DayOf(t time.Time, loc *time.Location) Day {
	local := t.In(loc)
	return Day{
		year:  local.Year(),
		month: local.Month(),
		day:   local.Day(),
		guard: guard.NewConstructorGuard(),
	}
}

// DayFromString parses a Day from its canonical "YYYY-MM-DD" form.
// Returns an error if the string is not a valid date.
func DayFromString(s string) (Day, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return Day{}, errs.NewValueIsInvalidErrorWithCause("day", err)
	}
	return DayOf(t, time.UTC), nil
}

// Start returns the first instant of the day in loc (local midnight).
func (d Day) Start(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// End returns the first instant of the following day in loc.
// A timestamp t belongs to the day when Start(loc) <= t < End(loc).
func (d Day) End(loc *time.Location) time.Time {
	return d.Start(loc).AddDate(0, 0, 1)
}

// At returns the instant on this day with the time-of-day taken from clock,
// evaluated in loc. Used when moving a job across days while preserving its
// visit time.
func (d Day) At(clock time.Time, loc *time.Location) time.Time {
	local := clock.In(loc)
	return time.Date(d.year, d.month, d.day,
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc)
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	t := d.Start(time.UTC).AddDate(0, 0, 1)
	return DayOf(t, time.UTC)
}

// IsEqual compares two days by calendar date.
func (d Day) IsEqual(other Day) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

// Before reports whether d falls before other on the calendar.
func (d Day) Before(other Day) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// String returns the canonical "YYYY-MM-DD" form of the day.
// This method implements the fmt.Stringer interface.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Validate checks if the Day was properly constructed.
func (d Day) Validate() error {
	return d.guard.Validate(ErrDayIsNotConstructed)
}
