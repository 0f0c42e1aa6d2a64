package commands

import (
	"context"
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/domain/resource"

	"github.com/google/uuid"
)

// ReservationRepository is the write path. Create persists the reservation
// row together with its resource links; if the links cannot be written after
// the row committed, the implementation must delete the row again before
// returning so no orphan is ever observable.
type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// Update persists status, hold deadline and updated-at after a state
	// transition. Links never change.
	Update(ctx context.Context, r *reservation.Reservation) error
	// HasActiveHold reports whether the user already has a HOLD or
	// PAYMENT_PENDING reservation of the kind with an unexpired deadline.
	HasActiveHold(ctx context.Context, userID uuid.UUID, kind resource.Kind, now time.Time) (bool, error)
	// ExpireBefore bulk-transitions holding reservations whose deadline is
	// strictly before the cutoff to EXPIRED, returning the affected ids.
	ExpireBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}
