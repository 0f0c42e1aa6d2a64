//go:build unit || e2e

package builder

import (
	"time"

	reqdto "courtside/internal/handler/dto/request"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ReservationID uuid.UUID
	UserID        uuid.UUID
	ResourceID    uuid.UUID
	ResourceName  string
	Kind          string
	Date          string
	StartTime     time.Time
	EndTime       time.Time
	StartHour     int
	DurationHours int
	Quantity      int
	Status        string
	HoldExpiresAt *time.Time
	TotalCents    int64
	DepositCents  int64
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(24 * time.Hour).Truncate(time.Hour)
	expiry := now.Add(10 * time.Minute)
	return &ReservationBuilder{
		ReservationID: uuid.New(),
		UserID:        uuid.New(),
		ResourceID:    uuid.New(),
		ResourceName:  "Cancha 1",
		Kind:          "FIELD",
		Date:          start.Format("2006-01-02"),
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		StartHour:     10,
		DurationHours: 2,
		Quantity:      1,
		Status:        "HOLD",
		HoldExpiresAt: &expiry,
		TotalCents:    7000,
		DepositCents:  3500,
		Note:          "birthday game",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		Kind:          r.Kind,
		Date:          r.Date,
		StartHour:     r.StartHour,
		DurationHours: r.DurationHours,
		Resources: []reqdto.ResourceLineRequest{
			{ResourceID: r.ResourceID, Quantity: r.Quantity},
		},
		Note: r.Note,
	}
}

func (r *ReservationBuilder) BuildPaymentRequestDTO() reqdto.PaymentResultRequest {
	return reqdto.PaymentResultRequest{
		ReservationID: r.ReservationID,
		Outcome:       "PAID",
		AmountCents:   r.DepositCents,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:            r.ReservationID,
		UserID:        r.UserID,
		Kind:          r.Kind,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
		HoldExpiresAt: r.HoldExpiresAt,
		TotalCents:    r.TotalCents,
		DepositCents:  r.DepositCents,
		Note:          r.Note,
		Resources: []queries.ReservationResourceView{
			{ResourceID: r.ResourceID, Name: r.ResourceName, Quantity: r.Quantity},
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() queries.ReservationListItem {
	return queries.ReservationListItem{
		ID:         r.ReservationID,
		Kind:       r.Kind,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Status:     r.Status,
		TotalCents: r.TotalCents,
		CreatedAt:  r.CreatedAt,
	}
}
