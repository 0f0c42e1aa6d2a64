package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/domain/resource"
	"courtside/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
	pgErrCodeForeignKeyViolated = "23503"
)

type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create writes the reservation row first and its resource links second. If
// a link insert fails the row is deleted again before returning, so a
// reservation with no linked resources is never observable.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations
			(id, user_id, kind, start_time, end_time, status, hold_expires_at,
			 total_cents, deposit_cents, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		res.ID(), res.UserID(), res.Kind().String(),
		res.Slot().Start(), res.Slot().End(), res.Status().String(),
		res.HoldExpiresAt(), res.Total().Cents(), res.Deposit().Cents(),
		res.Note().String(), res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return wrapWriteErr("failed to create reservation", err)
	}

	if err := r.insertLinks(ctx, res); err != nil {
		if _, delErr := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, res.ID()); delErr != nil {
			slog.Error("failed to roll back reservation after link insert failure",
				"reservation_id", res.ID().String(), "error", delErr.Error())
		}
		return wrapWriteErr("failed to create reservation resources", err)
	}
	return nil
}

func (r *ReservationRepository) insertLinks(ctx context.Context, res *reservation.Reservation) error {
	batch := &pgx.Batch{}
	for _, line := range res.Lines() {
		batch.Queue(`
			INSERT INTO reservation_resources (reservation_id, resource_id, quantity)
			VALUES ($1, $2, $3)`,
			res.ID(), line.ResourceID(), line.Quantity())
	}
	return r.db.SendBatch(ctx, batch).Close()
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		userID        uuid.UUID
		kind          string
		startTime     time.Time
		endTime       time.Time
		status        string
		holdExpiresAt *time.Time
		totalCents    int64
		depositCents  int64
		note          string
		createdAt     time.Time
		updatedAt     time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT user_id, kind, start_time, end_time, status, hold_expires_at,
		       total_cents, deposit_cents, note, created_at, updated_at
		FROM reservations
		WHERE id = $1`, id).Scan(
		&userID, &kind, &startTime, &endTime, &status, &holdExpiresAt,
		&totalCents, &depositCents, &note, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	lines, err := r.findLines(ctx, id)
	if err != nil {
		return nil, err
	}

	slot, err := reservation.NewTimeSlot(startTime, endTime)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has an invalid time range", err)
	}
	return reservation.Reconstruct(
		id, userID,
		resource.Kind(kind),
		slot,
		reservation.Status(status),
		holdExpiresAt,
		reservation.MustMoney(totalCents), reservation.MustMoney(depositCents),
		reservation.NewNote(note),
		lines,
		createdAt, updatedAt,
	), nil
}

func (r *ReservationRepository) findLines(ctx context.Context, id uuid.UUID) ([]reservation.ResourceLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT resource_id, quantity
		FROM reservation_resources
		WHERE reservation_id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservation resources", err)
	}
	defer rows.Close()

	var lines []reservation.ResourceLine
	for rows.Next() {
		var (
			resourceID uuid.UUID
			quantity   int
		)
		if err := rows.Scan(&resourceID, &quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation resource row", err)
		}
		line, err := reservation.NewResourceLine(resourceID, quantity)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has an invalid resource line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation resource rows", err)
	}
	return lines, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status = $2, hold_expires_at = $3, updated_at = $4
		WHERE id = $1`,
		res.ID(), res.Status().String(), res.HoldExpiresAt(), res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) HasActiveHold(ctx context.Context, userID uuid.UUID, kind resource.Kind, now time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM reservations
			WHERE user_id = $1
			  AND kind = $2
			  AND status = ANY($3)
			  AND hold_expires_at > $4
		)`, userID, kind.String(), statusStrings(reservation.HoldingStatuses()), now).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check for an active hold", err)
	}
	return exists, nil
}

func (r *ReservationRepository) ExpireBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE reservations
		SET status = $1, updated_at = $2
		WHERE status = ANY($3)
		  AND hold_expires_at < $2
		RETURNING id`,
		reservation.StatusExpired.String(), cutoff, statusStrings(reservation.HoldingStatuses()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire lapsed holds", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired reservation id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired reservation ids", err)
	}
	return ids, nil
}

// wrapWriteErr classifies constraint violations so the usecase layer can
// distinguish a lost capacity race from a plain failure.
func wrapWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation, pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeForeignKeyViolated:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
