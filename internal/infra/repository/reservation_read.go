package repository

import (
	"context"
	"errors"
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/infra"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationReadRepository serves the overlap index and the reservation
// views. It never mutates.
type ReservationReadRepository struct {
	db *pgxpool.Pool
}

func NewReservationReadRepository(db *pgxpool.Pool) *ReservationReadRepository {
	return &ReservationReadRepository{db: db}
}

func statusStrings(statuses []reservation.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

func (r *ReservationReadRepository) FindOverlapping(ctx context.Context, start, end time.Time, statuses []reservation.Status) ([]queries.OverlapRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.status, r.start_time, r.end_time, r.hold_expires_at,
		       l.resource_id, l.quantity
		FROM reservations r
		JOIN reservation_resources l ON l.reservation_id = r.id
		WHERE r.start_time < $2
		  AND r.end_time > $1
		  AND r.status = ANY($3)
		ORDER BY r.id`, start, end, statusStrings(statuses))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var out []queries.OverlapRow
	for rows.Next() {
		var (
			id            uuid.UUID
			status        string
			rowStart      time.Time
			rowEnd        time.Time
			holdExpiresAt *time.Time
			use           queries.ResourceUse
		)
		if err := rows.Scan(&id, &status, &rowStart, &rowEnd, &holdExpiresAt, &use.ResourceID, &use.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overlap row", err)
		}
		if n := len(out); n > 0 && out[n-1].ReservationID == id {
			out[n-1].Uses = append(out[n-1].Uses, use)
			continue
		}
		out = append(out, queries.OverlapRow{
			ReservationID: id,
			Status:        reservation.Status(status),
			Start:         rowStart,
			End:           rowEnd,
			HoldExpiresAt: holdExpiresAt,
			Uses:          []queries.ResourceUse{use},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlap rows", err)
	}
	return out, nil
}

func (r *ReservationReadRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view := &queries.ReservationView{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, kind, start_time, end_time, status,
		       hold_expires_at, total_cents, deposit_cents, note,
		       created_at, updated_at
		FROM reservations
		WHERE id = $1`, id).Scan(
		&view.ID, &view.UserID, &view.Kind, &view.StartTime, &view.EndTime,
		&view.Status, &view.HoldExpiresAt, &view.TotalCents, &view.DepositCents,
		&view.Note, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	resources, err := r.findResourceViews(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Resources = resources
	return view, nil
}

func (r *ReservationReadRepository) findResourceViews(ctx context.Context, reservationID uuid.UUID) ([]queries.ReservationResourceView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT l.resource_id, res.name, l.quantity
		FROM reservation_resources l
		JOIN resources res ON res.id = l.resource_id
		WHERE l.reservation_id = $1
		ORDER BY res.name`, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservation resources", err)
	}
	defer rows.Close()

	var out []queries.ReservationResourceView
	for rows.Next() {
		var v queries.ReservationResourceView
		if err := rows.Scan(&v.ResourceID, &v.Name, &v.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation resource row", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation resource rows", err)
	}
	return out, nil
}

func (r *ReservationReadRepository) FindViewsByUser(ctx context.Context, userID uuid.UUID) ([]queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, start_time, end_time, status, total_cents, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by user", err)
	}
	defer rows.Close()

	var out []queries.ReservationListItem
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(&item.ID, &item.Kind, &item.StartTime, &item.EndTime,
			&item.Status, &item.TotalCents, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list row", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation list rows", err)
	}
	return out, nil
}

func (r *ReservationReadRepository) FindViewsByRange(ctx context.Context, start, end time.Time, statuses []reservation.Status) ([]queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, kind, start_time, end_time, status,
		       hold_expires_at, total_cents, deposit_cents, note,
		       created_at, updated_at
		FROM reservations
		WHERE start_time < $2
		  AND end_time > $1
		  AND status = ANY($3)
		ORDER BY start_time`, start, end, statusStrings(statuses))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by range", err)
	}
	defer rows.Close()

	var out []queries.ReservationView
	for rows.Next() {
		var view queries.ReservationView
		if err := rows.Scan(
			&view.ID, &view.UserID, &view.Kind, &view.StartTime, &view.EndTime,
			&view.Status, &view.HoldExpiresAt, &view.TotalCents, &view.DepositCents,
			&view.Note, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation view row", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation view rows", err)
	}

	for i := range out {
		resources, err := r.findResourceViews(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Resources = resources
	}
	return out, nil
}
