package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot    = errors.New("start time must be before end time")
	ErrNonIntegralHours   = errors.New("duration must be a whole number of hours")
	ErrDurationTooLong    = errors.New("duration exceeds the maximum")
	ErrNegativeMoney      = errors.New("money cannot be negative")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrNoResources        = errors.New("at least one resource is required")
	ErrDuplicateResources = errors.New("duplicate resource in request")
)

// TimeSlot is the half-open UTC range [start, end) a reservation occupies.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	if end.Sub(start)%time.Hour != 0 {
		return TimeSlot{}, ErrNonIntegralHours
	}
	return TimeSlot{start: start.UTC(), end: end.UTC()}, nil
}

func (ts TimeSlot) Start() time.Time { return ts.start }
func (ts TimeSlot) End() time.Time   { return ts.end }

func (ts TimeSlot) Hours() int {
	return int(ts.end.Sub(ts.start) / time.Hour)
}

func (ts TimeSlot) ValidateMaxHours(maxHours int) error {
	if ts.Hours() > maxHours {
		return ErrDurationTooLong
	}
	return nil
}

// Overlaps uses half-open semantics: a slot ending exactly when another
// starts does not overlap it.
func (ts TimeSlot) Overlaps(start, end time.Time) bool {
	return ts.start.Before(end) && ts.end.After(start)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 { return m.cents }
func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// Percent returns pct% of the amount, truncated to whole cents.
func (m Money) Percent(pct int) Money {
	return Money{cents: m.cents * int64(pct) / 100}
}

const maxNoteLength = 500

// Note is free text supplied by the customer; it is trimmed, stripped of
// markup-significant characters and capped before persisting.
type Note struct {
	value string
}

func NewNote(value string) Note {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'':
			return -1
		}
		return r
	}, cleaned)
	if len(cleaned) > maxNoteLength {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := maxNoteLength
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut]
	}
	return Note{value: cleaned}
}

func (n Note) String() string { return n.value }
func (n Note) IsEmpty() bool  { return n.value == "" }

// ResourceLine is one requested resource and how much of its capacity the
// reservation consumes.
type ResourceLine struct {
	resourceID uuid.UUID
	quantity   int
}

func NewResourceLine(resourceID uuid.UUID, quantity int) (ResourceLine, error) {
	if quantity < 1 {
		return ResourceLine{}, ErrInvalidQuantity
	}
	return ResourceLine{resourceID: resourceID, quantity: quantity}, nil
}

func (l ResourceLine) ResourceID() uuid.UUID { return l.resourceID }
func (l ResourceLine) Quantity() int         { return l.quantity }
