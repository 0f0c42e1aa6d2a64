// Package venuetime converts between venue-local wall-clock slots and the
// UTC instants the store persists. The venue runs on a fixed UTC offset with
// no daylight saving, so the conversion is a pure offset shift; keeping it in
// one place avoids mixed local/UTC comparisons elsewhere.
package venuetime

import (
	"time"

	"courtside/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate = errs.New("malformed local date")
	ErrInvalidHour = errs.New("hour out of range")
)

type Zone struct {
	loc *time.Location
}

func NewZone(utcOffsetHours int) Zone {
	return Zone{loc: time.FixedZone("venue", utcOffsetHours*3600)}
}

func (z Zone) Location() *time.Location {
	return z.loc
}

// ToUTCRange interprets localDate + startHour as venue-local wall-clock time
// and returns the UTC instants bounding [start, start+durationHours).
func (z Zone) ToUTCRange(localDate string, startHour, durationHours int) (time.Time, time.Time, error) {
	if startHour < 0 || startHour > 23 {
		return time.Time{}, time.Time{}, ErrInvalidHour
	}
	day, err := z.parseDate(localDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := day.Add(time.Duration(startHour) * time.Hour)
	end := start.Add(time.Duration(durationHours) * time.Hour)
	return start.UTC(), end.UTC(), nil
}

// DayBoundsUTC returns the UTC instants spanning the full venue-local
// calendar day [00:00, 24:00).
func (z Zone) DayBoundsUTC(localDate string) (time.Time, time.Time, error) {
	day, err := z.parseDate(localDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day.UTC(), day.Add(24 * time.Hour).UTC(), nil
}

// IsPastHour reports whether the venue-local hour on localDate is at or
// before the venue-local "now". Dates before today are always past, dates
// after today never are; on the current day the running hour itself counts
// as past so a 12:00 slot cannot be taken at 12:30.
func (z Zone) IsPastHour(hour int, localDate string, now time.Time) bool {
	localNow := now.In(z.loc)
	today := localNow.Format(dateLayout)
	if localDate < today {
		return true
	}
	if localDate > today {
		return false
	}
	return hour <= localNow.Hour()
}

// LocalDate formats an instant as the venue-local calendar date.
func (z Zone) LocalDate(t time.Time) string {
	return t.In(z.loc).Format(dateLayout)
}

func (z Zone) parseDate(localDate string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, localDate, z.loc)
	if err != nil {
		return time.Time{}, errs.Mark(err, ErrInvalidDate)
	}
	return day, nil
}
