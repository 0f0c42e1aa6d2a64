//go:build e2e

package dbtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed catalog ids so e2e tests can reference resources without lookups.
var (
	Field1ID = uuid.MustParse("11111111-1111-1111-1111-111111111101")
	Field2ID = uuid.MustParse("11111111-1111-1111-1111-111111111102")
	TableAID = uuid.MustParse("22222222-2222-2222-2222-222222222201")
	TableBID = uuid.MustParse("22222222-2222-2222-2222-222222222202")
)

// SeedReferenceData loads the resource catalog every e2e suite runs against.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		INSERT INTO resources (id, kind, name, capacity) VALUES
			($1, 'FIELD', 'Cancha 1', 1),
			($2, 'FIELD', 'Cancha 2', 1),
			($3, 'TABLE_ROW', 'Mesa A', 4),
			($4, 'TABLE_ROW', 'Mesa B', 4)
		ON CONFLICT (id) DO NOTHING`,
		Field1ID, Field2ID, TableAID, TableBID)
	return err
}

// ResetDB drops all reservation state and reseeds the catalog so each subtest
// starts clean.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE reservation_resources, reservations"); err != nil {
		return err
	}
	return SeedReferenceData(pool)
}

// BackdateHoldExpiry forces a reservation's hold deadline into the past so a
// sweep pass picks it up without waiting out the TTL.
func BackdateHoldExpiry(pool *pgxpool.Pool, reservationID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx,
		"UPDATE reservations SET hold_expires_at = now() - interval '1 minute' WHERE id = $1",
		reservationID)
	return err
}
