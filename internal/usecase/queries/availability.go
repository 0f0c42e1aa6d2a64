package queries

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/domain/resource"
	"courtside/internal/infra"
	"courtside/internal/pkg/clock"
	"courtside/internal/pkg/config"
	"courtside/internal/pkg/errs"
	"courtside/internal/pkg/venuetime"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange    = errs.New("invalid time range")
	ErrInvalidResource = errs.New("unknown resource")
	ErrTypeMismatch    = errs.New("resources of mixed kinds requested")
	ErrInvalidDate     = errs.New("invalid date")
	ErrStoreFailure    = errs.New("availability store failure")
)

type ResourceRequest struct {
	ResourceID uuid.UUID
	Quantity   int
}

// AvailabilityResult is the outcome of a capacity check. Reason and
// ResourceID are set only when unavailable, naming the first violating
// resource.
type AvailabilityResult struct {
	Available  bool
	Reason     string
	ResourceID uuid.UUID
}

type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotHold      SlotStatus = "HOLD"
	SlotConfirmed SlotStatus = "CONFIRMED"
)

type Slot struct {
	Hour   int
	Status SlotStatus
}

type ResourceDaySlots struct {
	Resource ResourceSnapshot
	Slots    []Slot
}

// DayGrid is the calendar view for one venue-local day and one kind: the
// per-resource hour slots plus the per-kind aggregate for a candidate block
// duration.
type DayGrid struct {
	Date          string
	Kind          string
	DurationHours int
	Resources     []ResourceDaySlots
	Aggregate     []Slot
}

type AvailabilityQueries interface {
	// CheckAvailability decides whether adding the requested quantities over
	// [start, end) would exceed any resource's capacity. now is captured once
	// by the caller so hold validity is judged consistently across rows.
	CheckAvailability(ctx context.Context, start, end time.Time, requested []ResourceRequest, now time.Time) (*AvailabilityResult, error)
	// DayGrid renders the slot grid for one local date and kind.
	DayGrid(ctx context.Context, localDate string, kind resource.Kind, durationHours int) (*DayGrid, error)
}

type availabilityQueriesImpl struct {
	resources    ResourceReadStore
	reservations ReservationReadStore
	clock        clock.Clock
	zone         venuetime.Zone
	openHour     int
	closeHour    int
}

func NewAvailabilityQueries(
	resources ResourceReadStore,
	reservations ReservationReadStore,
	clk clock.Clock,
	zone venuetime.Zone,
	venue config.VenueConfig,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		resources:    resources,
		reservations: reservations,
		clock:        clk,
		zone:         zone,
		openHour:     venue.OpenHour,
		closeHour:    venue.CloseHour,
	}
}

func (q *availabilityQueriesImpl) CheckAvailability(
	ctx context.Context,
	start, end time.Time,
	requested []ResourceRequest,
	now time.Time,
) (*AvailabilityResult, error) {
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	ids := make([]uuid.UUID, len(requested))
	for i, r := range requested {
		ids[i] = r.ResourceID
	}
	snapshots, err := q.resources.FindByIDs(ctx, ids)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidResource)
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	if err := sameKind(snapshots); err != nil {
		return nil, err
	}

	rows, err := q.reservations.FindOverlapping(ctx, start, end, reservation.OccupyingStatuses())
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	return evaluate(snapshots, requested, rows, now), nil
}

// evaluate is the pure capacity check: per requested resource, sum the
// quantities of overlapping rows that occupy at evaluation time and compare
// against capacity. The first violation wins.
func evaluate(snapshots []ResourceSnapshot, requested []ResourceRequest, rows []OverlapRow, now time.Time) *AvailabilityResult {
	byID := make(map[uuid.UUID]ResourceSnapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}

	used := make(map[uuid.UUID]int, len(requested))
	for _, row := range rows {
		if !row.Occupies(now) {
			continue
		}
		for _, use := range row.Uses {
			if _, wanted := byID[use.ResourceID]; wanted {
				used[use.ResourceID] += use.Quantity
			}
		}
	}

	for _, req := range requested {
		info := byID[req.ResourceID]
		if used[req.ResourceID]+req.Quantity > info.Capacity {
			if info.Capacity == 1 {
				return &AvailabilityResult{
					Reason:     fmt.Sprintf("%s is already booked", info.Name),
					ResourceID: info.ID,
				}
			}
			return &AvailabilityResult{
				Reason: fmt.Sprintf("not enough capacity for %s: requested %d, available %d",
					info.Name, req.Quantity, info.Capacity-used[req.ResourceID]),
				ResourceID: info.ID,
			}
		}
	}

	return &AvailabilityResult{Available: true}
}

func sameKind(snapshots []ResourceSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	kind := snapshots[0].Kind
	for _, s := range snapshots[1:] {
		if s.Kind != kind {
			return ErrTypeMismatch
		}
	}
	return nil
}

func (q *availabilityQueriesImpl) DayGrid(
	ctx context.Context,
	localDate string,
	kind resource.Kind,
	durationHours int,
) (*DayGrid, error) {
	if durationHours < 1 {
		return nil, ErrInvalidRange
	}
	dayStart, dayEnd, err := q.zone.DayBoundsUTC(localDate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	snapshots, err := q.resources.FindByKind(ctx, kind)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	rows, err := q.reservations.FindOverlapping(ctx, dayStart, dayEnd, reservation.OccupyingStatuses())
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	now := q.clock.Now()

	grid := &DayGrid{
		Date:          localDate,
		Kind:          kind.String(),
		DurationHours: durationHours,
		Resources:     make([]ResourceDaySlots, len(snapshots)),
	}
	for i, snap := range snapshots {
		grid.Resources[i] = ResourceDaySlots{
			Resource: snap,
			Slots:    q.resourceSlots(snap.ID, dayStart, rows, now),
		}
	}
	grid.Aggregate = q.aggregate(grid.Resources, durationHours)

	return grid, nil
}

// resourceSlots colors each operating hour of one resource. A CONFIRMED
// overlap dominates; otherwise any valid HOLD or PAYMENT_PENDING overlap
// marks the slot HOLD; otherwise the hour is free.
func (q *availabilityQueriesImpl) resourceSlots(resourceID uuid.UUID, dayStart time.Time, rows []OverlapRow, now time.Time) []Slot {
	slots := make([]Slot, 0, q.closeHour-q.openHour)
	for h := q.openHour; h < q.closeHour; h++ {
		hourStart := dayStart.Add(time.Duration(h) * time.Hour)
		hourEnd := hourStart.Add(time.Hour)

		status := SlotAvailable
		for _, row := range rows {
			if !row.Occupies(now) {
				continue
			}
			if !(row.Start.Before(hourEnd) && row.End.After(hourStart)) {
				continue
			}
			if !rowUses(row, resourceID) {
				continue
			}
			if row.Status == reservation.StatusConfirmed {
				status = SlotConfirmed
				break
			}
			status = SlotHold
		}
		slots = append(slots, Slot{Hour: h, Status: status})
	}
	return slots
}

// aggregate collapses per-resource slots into a per-kind hour status for a
// candidate block duration. The three steps are deliberate and ordered:
// per-resource hour slots, then per-resource block usability (every hour of
// [h, h+duration) free, blocks running past closing are unusable), then the
// kind-level verdict.
func (q *availabilityQueriesImpl) aggregate(resources []ResourceDaySlots, durationHours int) []Slot {
	out := make([]Slot, 0, q.closeHour-q.openHour)
	for h := q.openHour; h < q.closeHour; h++ {
		if len(resources) == 0 {
			out = append(out, Slot{Hour: h, Status: SlotAvailable})
			continue
		}

		availableCount := 0
		confirmedBlocked := false

		for _, rd := range resources {
			free := true
			confirmed := false
			for i := 0; i < durationHours; i++ {
				checkH := h + i
				if checkH >= q.closeHour {
					free = false
					break
				}
				switch slotAt(rd.Slots, checkH) {
				case SlotConfirmed:
					free = false
					confirmed = true
				case SlotHold:
					free = false
				}
			}
			if free {
				availableCount++
			} else if confirmed {
				confirmedBlocked = true
			}
		}

		status := SlotHold
		switch {
		case availableCount > 0:
			status = SlotAvailable
		case confirmedBlocked:
			status = SlotConfirmed
		}
		out = append(out, Slot{Hour: h, Status: status})
	}
	return out
}

func slotAt(slots []Slot, hour int) SlotStatus {
	for _, s := range slots {
		if s.Hour == hour {
			return s.Status
		}
	}
	return SlotAvailable
}

func rowUses(row OverlapRow, resourceID uuid.UUID) bool {
	for _, use := range row.Uses {
		if use.ResourceID == resourceID {
			return true
		}
	}
	return false
}
