//go:build unit

package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/infra"
	"courtside/internal/pkg/venuetime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// viewStore extends the availability fake with canned views and records the
// statuses each range query asked for.
type viewStore struct {
	fakeReservationStore
	view        *ReservationView
	rangeViews  []ReservationView
	gotStatuses []reservation.Status
}

func (s *viewStore) FindViewByID(_ context.Context, id uuid.UUID) (*ReservationView, error) {
	if s.view != nil && s.view.ID == id {
		return s.view, nil
	}
	return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
}

func (s *viewStore) FindViewsByRange(_ context.Context, _, _ time.Time, statuses []reservation.Status) ([]ReservationView, error) {
	s.gotStatuses = statuses
	return s.rangeViews, nil
}

func newReservationQueries(store *viewStore, resources *fakeResourceStore) ReservationQueries {
	return NewReservationQueries(resources, store, venuetime.NewZone(-5))
}

func TestReservationQueries_GetByID(t *testing.T) {
	view := &ReservationView{ID: uuid.New(), Status: "HOLD"}
	q := newReservationQueries(&viewStore{view: view}, &fakeResourceStore{})

	got, err := q.GetByID(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view, got)

	_, err = q.GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrReservationNotFound))
}

func TestReservationQueries_ListByDate(t *testing.T) {
	store := &viewStore{rangeViews: []ReservationView{{ID: uuid.New(), Status: "EXPIRED"}}}
	q := newReservationQueries(store, &fakeResourceStore{})

	t.Run("no filter queries every status", func(t *testing.T) {
		views, err := q.ListByDate(context.Background(), testDate, "")
		require.NoError(t, err)
		assert.Len(t, views, 1)
		assert.ElementsMatch(t, reservation.AllStatuses(), store.gotStatuses)
	})

	t.Run("filter narrows to one status", func(t *testing.T) {
		_, err := q.ListByDate(context.Background(), testDate, "CONFIRMED")
		require.NoError(t, err)
		assert.Equal(t, []reservation.Status{reservation.StatusConfirmed}, store.gotStatuses)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := q.ListByDate(context.Background(), testDate, "PAID")
		assert.True(t, errors.Is(err, ErrInvalidStatus))
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		_, err := q.ListByDate(context.Background(), "15/09/2026", "")
		assert.True(t, errors.Is(err, ErrInvalidDate))
	})
}

func TestReservationQueries_CalendarDay(t *testing.T) {
	field := fieldSnapshot("Cancha 1", 1)
	store := &viewStore{rangeViews: []ReservationView{{ID: uuid.New(), Status: "HOLD"}}}
	q := newReservationQueries(store, &fakeResourceStore{snapshots: []ResourceSnapshot{field}})

	day, err := q.CalendarDay(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, testDate, day.Date)
	assert.Len(t, day.Resources, 1)
	assert.Len(t, day.Reservations, 1)
	// The calendar shows only occupying states; lapsed holds are grayed out
	// client-side using the expiry instant.
	assert.ElementsMatch(t, reservation.OccupyingStatuses(), store.gotStatuses)

	_, err = q.CalendarDay(context.Background(), "not-a-date")
	assert.True(t, errors.Is(err, ErrInvalidDate))
}
