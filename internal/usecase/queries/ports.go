package queries

import (
	"context"
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/domain/resource"

	"github.com/google/uuid"
)

// ResourceSnapshot is the read model of one catalog row.
type ResourceSnapshot struct {
	ID       uuid.UUID
	Kind     resource.Kind
	Name     string
	Capacity int
}

// ResourceUse is one (resource, quantity) pair consumed by a reservation.
type ResourceUse struct {
	ResourceID uuid.UUID
	Quantity   int
}

// OverlapRow is one non-terminal reservation returned by the overlap index,
// with everything the evaluator needs to decide whether it occupies capacity
// at evaluation time.
type OverlapRow struct {
	ReservationID uuid.UUID
	Status        reservation.Status
	Start         time.Time
	End           time.Time
	HoldExpiresAt *time.Time
	Uses          []ResourceUse
}

// Occupies applies the validity rule: CONFIRMED and PAYMENT_PENDING always
// consume capacity; a HOLD consumes it only while its deadline is still in
// the future at evaluation time.
func (r OverlapRow) Occupies(now time.Time) bool {
	switch r.Status {
	case reservation.StatusConfirmed, reservation.StatusPaymentPending:
		return true
	case reservation.StatusHold:
		return r.HoldExpiresAt != nil && r.HoldExpiresAt.After(now)
	default:
		return false
	}
}

// ResourceReadStore is the catalog reader.
type ResourceReadStore interface {
	// FindByIDs fails with a NOT_FOUND kind when any id is unknown.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ResourceSnapshot, error)
	FindAll(ctx context.Context) ([]ResourceSnapshot, error)
	FindByKind(ctx context.Context, kind resource.Kind) ([]ResourceSnapshot, error)
}

// ReservationReadStore is the overlap index plus the reservation views the
// API serves.
type ReservationReadStore interface {
	// FindOverlapping returns reservations in the given statuses whose range
	// overlaps [start, end) under half-open semantics, with their resource
	// uses.
	FindOverlapping(ctx context.Context, start, end time.Time, statuses []reservation.Status) ([]OverlapRow, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindViewsByUser(ctx context.Context, userID uuid.UUID) ([]ReservationListItem, error)
	FindViewsByRange(ctx context.Context, start, end time.Time, statuses []reservation.Status) ([]ReservationView, error)
}

// ReservationView is the full detail read model.
type ReservationView struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Kind          string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	HoldExpiresAt *time.Time
	TotalCents    int64
	DepositCents  int64
	Note          string
	Resources     []ReservationResourceView
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ReservationResourceView struct {
	ResourceID uuid.UUID
	Name       string
	Quantity   int
}

// ReservationListItem is the compact row for "my reservations" listings.
type ReservationListItem struct {
	ID         uuid.UUID
	Kind       string
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	TotalCents int64
	CreatedAt  time.Time
}
