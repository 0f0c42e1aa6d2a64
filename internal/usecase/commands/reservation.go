package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/domain/resource"
	"courtside/internal/infra"
	"courtside/internal/pkg/clock"
	"courtside/internal/pkg/config"
	"courtside/internal/pkg/errs"
	"courtside/internal/pkg/venuetime"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest          = errs.New("invalid request")
	ErrInvalidDate             = errs.New("invalid or past date")
	ErrInvalidHour             = errs.New("invalid start hour")
	ErrInvalidDuration         = errs.New("invalid duration")
	ErrRuleViolation           = errs.New("duration exceeds the venue maximum")
	ErrTooManyResources        = errs.New("too many resources requested")
	ErrInvalidType             = errs.New("unknown resource kind")
	ErrInvalidResource         = errs.New("unknown resource")
	ErrTypeMismatch            = errs.New("resource kind mismatch")
	ErrNotAvailable            = errs.New("requested slot is not available")
	ErrActiveHoldExists        = errs.New("an active hold already exists for this kind")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrInvalidState            = errs.New("reservation state does not permit this operation")
	ErrAmountMismatch          = errs.New("paid amount does not match the deposit")
	ErrNotOwned                = errs.New("reservation belongs to another user")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// PaymentOutcome is the provider-reported result of a payment attempt.
type PaymentOutcome string

const (
	OutcomePaid   PaymentOutcome = "PAID"
	OutcomeFailed PaymentOutcome = "FAILED"
)

type CreateHoldInput struct {
	UserID        uuid.UUID
	Kind          string
	LocalDate     string
	StartHour     int
	DurationHours int
	Resources     []queries.ResourceRequest
	Note          string
}

type PaymentResultInput struct {
	ReservationID uuid.UUID
	Outcome       PaymentOutcome
	PaidCents     int64
}

type ReservationCommands interface {
	// CreateHold validates the request, re-checks availability and persists a
	// new hold. The returned view reflects the stored row.
	CreateHold(ctx context.Context, in CreateHoldInput) (*queries.ReservationView, error)
	// BeginPayment moves a hold into PAYMENT_PENDING when the caller starts
	// checkout.
	BeginPayment(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	// RecordPaymentResult applies a provider callback. A PAID outcome for an
	// already confirmed reservation is acknowledged without change; a FAILED
	// outcome leaves the reservation for the sweeper.
	RecordPaymentResult(ctx context.Context, in PaymentResultInput) error
	Cancel(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) error
	Approve(ctx context.Context, id uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	repo         ReservationRepository
	resources    queries.ResourceReadStore
	availability queries.AvailabilityQueries
	views        queries.ReservationReadStore
	clock        clock.Clock
	zone         venuetime.Zone
	venue        config.VenueConfig
	rates        reservation.RateTable
}

func NewReservationCommands(
	repo ReservationRepository,
	resources queries.ResourceReadStore,
	availability queries.AvailabilityQueries,
	views queries.ReservationReadStore,
	clk clock.Clock,
	zone venuetime.Zone,
	venue config.VenueConfig,
) ReservationCommands {
	return &reservationCommandsImpl{
		repo:         repo,
		resources:    resources,
		availability: availability,
		views:        views,
		clock:        clk,
		zone:         zone,
		venue:        venue,
		rates: reservation.RateTable{
			FieldHourlyCents:    venue.FieldHourlyRateCents,
			TableRowHourlyCents: venue.TableRowHourlyRateCents,
			DepositPercent:      venue.DepositPercent,
		},
	}
}

func (c *reservationCommandsImpl) CreateHold(ctx context.Context, in CreateHoldInput) (*queries.ReservationView, error) {
	now := c.clock.Now()

	if len(in.Resources) == 0 {
		return nil, errs.Mark(errs.New("at least one resource is required"), ErrInvalidRequest)
	}
	if len(in.Resources) > c.venue.MaxResources {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("at most %d resources per reservation", c.venue.MaxResources)),
			ErrTooManyResources,
		)
	}
	kind, err := resource.NewKind(in.Kind)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidType)
	}
	if in.DurationHours < 1 {
		return nil, errs.Mark(errs.New("duration must be at least one hour"), ErrInvalidDuration)
	}

	start, end, err := c.zone.ToUTCRange(in.LocalDate, in.StartHour, in.DurationHours)
	if err != nil {
		if errors.Is(err, venuetime.ErrInvalidHour) {
			return nil, errs.Mark(err, ErrInvalidHour)
		}
		return nil, errs.Mark(err, ErrInvalidDate)
	}
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDuration)
	}
	if err := slot.ValidateMaxHours(c.venue.MaxDurationHours); err != nil {
		return nil, errs.Mark(err, ErrRuleViolation)
	}
	if c.zone.IsPastHour(in.StartHour, in.LocalDate, now) {
		return nil, errs.Mark(errs.New("cannot reserve a past hour"), ErrInvalidHour)
	}
	if !start.After(now) {
		return nil, errs.Mark(errs.New("cannot reserve in the past"), ErrInvalidDate)
	}

	lines, err := buildLines(in.Resources)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}
	if err := c.checkKind(ctx, kind, in.Resources); err != nil {
		return nil, err
	}

	active, err := c.repo.HasActiveHold(ctx, in.UserID, kind, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if active {
		return nil, ErrActiveHoldExists
	}

	result, err := c.availability.CheckAvailability(ctx, start, end, in.Resources, now)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidResource):
			return nil, errs.Mark(err, ErrInvalidResource)
		case errors.Is(err, queries.ErrTypeMismatch):
			return nil, errs.Mark(err, ErrTypeMismatch)
		default:
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	if !result.Available {
		return nil, errs.Mark(errs.New(result.Reason), ErrNotAvailable)
	}

	quote := c.rates.QuoteFor(kind, slot, lines)
	hold, err := reservation.NewHold(
		in.UserID, kind, slot, lines, quote,
		reservation.NewNote(in.Note), now, c.venue.HoldTTL,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}

	if err := c.repo.Create(ctx, hold); err != nil {
		// A conflict means a concurrent writer claimed the capacity between
		// the check and the insert; report it the same way as a failed check.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(errs.New("requested slot is no longer available"), ErrNotAvailable)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.views.FindViewByID(ctx, hold.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// checkKind verifies every requested resource exists in the catalog and
// carries the kind named in the request.
func (c *reservationCommandsImpl) checkKind(ctx context.Context, kind resource.Kind, requested []queries.ResourceRequest) error {
	ids := make([]uuid.UUID, len(requested))
	for i, r := range requested {
		ids[i] = r.ResourceID
	}
	snapshots, err := c.resources.FindByIDs(ctx, ids)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrInvalidResource)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	for _, s := range snapshots {
		if s.Kind != kind {
			return errs.Mark(
				errs.New(fmt.Sprintf("resource %s is %s, not %s", s.Name, s.Kind, kind)),
				ErrTypeMismatch,
			)
		}
	}
	return nil
}

func (c *reservationCommandsImpl) BeginPayment(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	r, err := c.load(ctx, id)
	if err != nil {
		return err
	}
	if r.UserID() != userID {
		return ErrNotOwned
	}
	now := c.clock.Now()
	if err := c.expireLapsed(ctx, r, now); err != nil {
		return err
	}
	if err := r.StartPayment(now); err != nil {
		return errs.Mark(err, ErrInvalidState)
	}
	return c.save(ctx, r)
}

// expireLapsed finishes the expiry transition for a holding reservation
// whose deadline has passed before any sweep visited it. Acting on such a
// reservation would claim capacity the availability evaluator has already
// re-offered to other bookings.
func (c *reservationCommandsImpl) expireLapsed(ctx context.Context, r *reservation.Reservation, now time.Time) error {
	if !r.Status().IsHolding() || r.HoldActive(now) {
		return nil
	}
	if err := r.Expire(now); err != nil {
		return errs.Mark(err, ErrInvalidState)
	}
	if err := c.save(ctx, r); err != nil {
		return err
	}
	return errs.Mark(errs.New("hold deadline has passed"), ErrInvalidState)
}

func (c *reservationCommandsImpl) RecordPaymentResult(ctx context.Context, in PaymentResultInput) error {
	r, err := c.load(ctx, in.ReservationID)
	if err != nil {
		return err
	}
	now := c.clock.Now()

	switch in.Outcome {
	case OutcomePaid:
		paid, err := reservation.NewMoney(in.PaidCents)
		if err != nil {
			return errs.Mark(err, ErrInvalidRequest)
		}
		if err := c.expireLapsed(ctx, r, now); err != nil {
			return err
		}
		if err := r.ConfirmPayment(paid, now); err != nil {
			switch {
			case errors.Is(err, reservation.ErrAlreadyConfirmed):
				// Duplicate callback, nothing to do.
				return nil
			case errors.Is(err, reservation.ErrAmountMismatch):
				return errs.Mark(err, ErrAmountMismatch)
			default:
				return errs.Mark(err, ErrInvalidState)
			}
		}
		return c.save(ctx, r)
	case OutcomeFailed:
		// The hold keeps its deadline and the sweeper reclaims it. Terminal
		// reservations reject the callback outright.
		if r.Status().IsTerminal() {
			return errs.Mark(errs.New("reservation already settled"), ErrInvalidState)
		}
		return nil
	default:
		return errs.Mark(errs.New(fmt.Sprintf("unknown payment outcome %q", in.Outcome)), ErrInvalidRequest)
	}
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) error {
	r, err := c.load(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && r.UserID() != userID {
		return ErrNotOwned
	}
	if err := r.Cancel(c.clock.Now()); err != nil {
		return errs.Mark(err, ErrInvalidState)
	}
	return c.save(ctx, r)
}

func (c *reservationCommandsImpl) Approve(ctx context.Context, id uuid.UUID) error {
	r, err := c.load(ctx, id)
	if err != nil {
		return err
	}
	now := c.clock.Now()
	if err := c.expireLapsed(ctx, r, now); err != nil {
		return err
	}
	if err := r.Approve(now); err != nil {
		return errs.Mark(err, ErrInvalidState)
	}
	return c.save(ctx, r)
}

func (c *reservationCommandsImpl) Reject(ctx context.Context, id uuid.UUID) error {
	r, err := c.load(ctx, id)
	if err != nil {
		return err
	}
	if err := r.Cancel(c.clock.Now()); err != nil {
		return errs.Mark(err, ErrInvalidState)
	}
	return c.save(ctx, r)
}

func (c *reservationCommandsImpl) load(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return r, nil
}

func (c *reservationCommandsImpl) save(ctx context.Context, r *reservation.Reservation) error {
	if err := c.repo.Update(ctx, r); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func buildLines(requested []queries.ResourceRequest) ([]reservation.ResourceLine, error) {
	lines := make([]reservation.ResourceLine, 0, len(requested))
	for _, r := range requested {
		line, err := reservation.NewResourceLine(r.ResourceID, r.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
