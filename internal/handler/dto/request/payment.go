package request

import (
	"courtside/internal/usecase/commands"

	"github.com/google/uuid"
)

type PaymentResultRequest struct {
	ReservationID uuid.UUID `json:"reservationId" binding:"required"`
	Outcome       string    `json:"outcome" binding:"required"`
	AmountCents   int64     `json:"amountCents"`
}

func (r PaymentResultRequest) ToInput() commands.PaymentResultInput {
	return commands.PaymentResultInput{
		ReservationID: r.ReservationID,
		Outcome:       commands.PaymentOutcome(r.Outcome),
		PaidCents:     r.AmountCents,
	}
}
