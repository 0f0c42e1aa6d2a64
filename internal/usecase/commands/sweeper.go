package commands

import (
	"context"

	"courtside/internal/pkg/clock"
	"courtside/internal/pkg/errs"

	"github.com/google/uuid"
)

// SweepResult reports one sweeper pass.
type SweepResult struct {
	Count int
	IDs   []uuid.UUID
}

type SweeperCommands interface {
	// Sweep transitions every HOLD and PAYMENT_PENDING reservation whose
	// deadline has passed to EXPIRED. Safe to run concurrently: each pass
	// only sees rows still in a holding state, so a reservation is expired
	// at most once.
	Sweep(ctx context.Context) (*SweepResult, error)
}

type sweeperCommandsImpl struct {
	repo  ReservationRepository
	clock clock.Clock
}

func NewSweeperCommands(repo ReservationRepository, clk clock.Clock) SweeperCommands {
	return &sweeperCommandsImpl{repo: repo, clock: clk}
}

func (s *sweeperCommandsImpl) Sweep(ctx context.Context) (*SweepResult, error) {
	ids, err := s.repo.ExpireBefore(ctx, s.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &SweepResult{Count: len(ids), IDs: ids}, nil
}
