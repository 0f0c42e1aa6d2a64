package reservation

import (
	"errors"
	"time"

	"courtside/internal/domain/resource"

	"github.com/google/uuid"
)

var (
	ErrStartInPast      = errors.New("start time is in the past")
	ErrKindMismatch     = errors.New("resources do not match the reservation kind")
	ErrTerminalState    = errors.New("reservation is in a terminal state")
	ErrNotHolding       = errors.New("reservation is not in a holding state")
	ErrAmountMismatch   = errors.New("paid amount does not match the deposit")
	ErrAlreadyConfirmed = errors.New("reservation is already confirmed")
	ErrNotYetExpired    = errors.New("hold deadline has not passed")
)

// Reservation is the aggregate the engine mutates: the row plus its resource
// lines. Lines are created atomically with the reservation and never change
// afterwards.
type Reservation struct {
	id            uuid.UUID
	userID        uuid.UUID
	kind          resource.Kind
	slot          TimeSlot
	status        Status
	holdExpiresAt *time.Time
	total         Money
	deposit       Money
	note          Note
	lines         []ResourceLine
	createdAt     time.Time
	updatedAt     time.Time
}

// NewHold creates a reservation in HOLD, or directly in CONFIRMED when the
// quote is zero (free kinds have no payment phase and therefore no hold
// deadline). The caller has already validated availability; this constructor
// only enforces the reservation's own rules.
func NewHold(
	userID uuid.UUID,
	kind resource.Kind,
	slot TimeSlot,
	lines []ResourceLine,
	quote Quote,
	note Note,
	now time.Time,
	holdTTL time.Duration,
) (*Reservation, error) {
	if len(lines) == 0 {
		return nil, ErrNoResources
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.ResourceID()]; dup {
			return nil, ErrDuplicateResources
		}
		seen[l.ResourceID()] = struct{}{}
	}
	if !slot.Start().After(now) {
		return nil, ErrStartInPast
	}

	r := &Reservation{
		id:        uuid.New(),
		userID:    userID,
		kind:      kind,
		slot:      slot,
		total:     quote.Total,
		deposit:   quote.Deposit,
		note:      note,
		lines:     lines,
		createdAt: now,
		updatedAt: now,
	}
	if quote.Total.IsZero() {
		r.status = StatusConfirmed
	} else {
		r.status = StatusHold
		expiry := now.Add(holdTTL)
		r.holdExpiresAt = &expiry
	}
	return r, nil
}

// Reconstruct rebuilds a reservation from persisted state without
// re-validating creation rules.
func Reconstruct(
	id, userID uuid.UUID,
	kind resource.Kind,
	slot TimeSlot,
	status Status,
	holdExpiresAt *time.Time,
	total, deposit Money,
	note Note,
	lines []ResourceLine,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		userID:        userID,
		kind:          kind,
		slot:          slot,
		status:        status,
		holdExpiresAt: holdExpiresAt,
		total:         total,
		deposit:       deposit,
		note:          note,
		lines:         lines,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// StartPayment moves HOLD to PAYMENT_PENDING when the payment collaborator
// takes over. The hold deadline is unchanged.
func (r *Reservation) StartPayment(now time.Time) error {
	if r.status != StatusHold {
		return r.transitionErr()
	}
	r.status = StatusPaymentPending
	r.updatedAt = now
	return nil
}

// ConfirmPayment transitions to CONFIRMED after verifying the paid amount
// matches the deposit exactly. Confirming an already-confirmed reservation
// returns ErrAlreadyConfirmed, which callers treat as idempotent success.
func (r *Reservation) ConfirmPayment(paid Money, now time.Time) error {
	if r.status == StatusConfirmed {
		return ErrAlreadyConfirmed
	}
	if !r.status.IsHolding() {
		return ErrTerminalState
	}
	if !paid.Equals(r.deposit) {
		return ErrAmountMismatch
	}
	r.confirm(now)
	return nil
}

// Approve is the administrative override: it confirms a holding reservation
// without payment verification.
func (r *Reservation) Approve(now time.Time) error {
	if !r.status.IsHolding() {
		return r.transitionErr()
	}
	r.confirm(now)
	return nil
}

// Cancel moves any non-terminal reservation to CANCELLED.
func (r *Reservation) Cancel(now time.Time) error {
	if r.status.IsTerminal() {
		return ErrTerminalState
	}
	r.status = StatusCancelled
	r.holdExpiresAt = nil
	r.updatedAt = now
	return nil
}

// Expire is the sweeper transition: holding states whose deadline has passed
// become EXPIRED. It never touches terminal states.
func (r *Reservation) Expire(now time.Time) error {
	if !r.status.IsHolding() {
		return ErrNotHolding
	}
	if r.holdExpiresAt == nil || !r.holdExpiresAt.Before(now) {
		return ErrNotYetExpired
	}
	r.status = StatusExpired
	r.updatedAt = now
	return nil
}

func (r *Reservation) confirm(now time.Time) {
	r.status = StatusConfirmed
	r.holdExpiresAt = nil
	r.updatedAt = now
}

func (r *Reservation) transitionErr() error {
	if r.status.IsTerminal() {
		return ErrTerminalState
	}
	return ErrNotHolding
}

// HoldActive reports whether the reservation still blocks other bookings by
// this user: a holding status with an unexpired deadline.
func (r *Reservation) HoldActive(now time.Time) bool {
	return r.status.IsHolding() && r.holdExpiresAt != nil && r.holdExpiresAt.After(now)
}

// Occupies reports whether the reservation consumes capacity at evaluation
// time. CONFIRMED and PAYMENT_PENDING always count; a HOLD counts only while
// its deadline is in the future, even if the sweeper has not run yet.
func (r *Reservation) Occupies(now time.Time) bool {
	switch r.status {
	case StatusConfirmed, StatusPaymentPending:
		return true
	case StatusHold:
		return r.holdExpiresAt != nil && r.holdExpiresAt.After(now)
	default:
		return false
	}
}

func (r *Reservation) ID() uuid.UUID            { return r.id }
func (r *Reservation) UserID() uuid.UUID        { return r.userID }
func (r *Reservation) Kind() resource.Kind      { return r.kind }
func (r *Reservation) Slot() TimeSlot           { return r.slot }
func (r *Reservation) Status() Status           { return r.status }
func (r *Reservation) HoldExpiresAt() *time.Time { return r.holdExpiresAt }
func (r *Reservation) Total() Money             { return r.total }
func (r *Reservation) Deposit() Money           { return r.deposit }
func (r *Reservation) Note() Note               { return r.note }
func (r *Reservation) CreatedAt() time.Time     { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time     { return r.updatedAt }

func (r *Reservation) Lines() []ResourceLine {
	out := make([]ResourceLine, len(r.lines))
	copy(out, r.lines)
	return out
}
