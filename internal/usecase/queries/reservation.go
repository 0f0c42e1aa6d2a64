package queries

import (
	"context"

	"courtside/internal/domain/reservation"
	"courtside/internal/infra"
	"courtside/internal/pkg/errs"
	"courtside/internal/pkg/venuetime"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidStatus       = errs.New("unknown status filter")
)

// CalendarDay is the raw admin day view: the catalog plus every non-terminal
// reservation touching the date, expiry instants included so the grid can
// gray out lapsed holds.
type CalendarDay struct {
	Date         string
	Resources    []ResourceSnapshot
	Reservations []ReservationView
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ReservationListItem, error)
	// ListByDate returns every reservation touching the venue-local date,
	// optionally narrowed to one status.
	ListByDate(ctx context.Context, localDate string, status string) ([]ReservationView, error)
	CalendarDay(ctx context.Context, localDate string) (*CalendarDay, error)
}

type reservationQueriesImpl struct {
	resources    ResourceReadStore
	reservations ReservationReadStore
	zone         venuetime.Zone
}

func NewReservationQueries(
	resources ResourceReadStore,
	reservations ReservationReadStore,
	zone venuetime.Zone,
) ReservationQueries {
	return &reservationQueriesImpl{
		resources:    resources,
		reservations: reservations,
		zone:         zone,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.reservations.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]ReservationListItem, error) {
	items, err := q.reservations.FindViewsByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return items, nil
}

func (q *reservationQueriesImpl) ListByDate(ctx context.Context, localDate string, status string) ([]ReservationView, error) {
	dayStart, dayEnd, err := q.zone.DayBoundsUTC(localDate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	statuses := reservation.AllStatuses()
	if status != "" {
		st := reservation.Status(status)
		if !st.IsValid() {
			return nil, errs.Mark(errs.New("status "+status), ErrInvalidStatus)
		}
		statuses = []reservation.Status{st}
	}

	views, err := q.reservations.FindViewsByRange(ctx, dayStart, dayEnd, statuses)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return views, nil
}

func (q *reservationQueriesImpl) CalendarDay(ctx context.Context, localDate string) (*CalendarDay, error) {
	dayStart, dayEnd, err := q.zone.DayBoundsUTC(localDate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	resources, err := q.resources.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	views, err := q.reservations.FindViewsByRange(ctx, dayStart, dayEnd, reservation.OccupyingStatuses())
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	return &CalendarDay{
		Date:         localDate,
		Resources:    resources,
		Reservations: views,
	}, nil
}
