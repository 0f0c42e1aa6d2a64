package request

import (
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceLineRequest struct {
	ResourceID uuid.UUID `json:"resourceId" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required"`
}

type CreateReservationRequest struct {
	Kind          string                `json:"kind" binding:"required"`
	Date          string                `json:"date" binding:"required"`
	StartHour     int                   `json:"startHour"`
	DurationHours int                   `json:"durationHours" binding:"required"`
	Resources     []ResourceLineRequest `json:"resources" binding:"required"`
	Note          string                `json:"note"`
}

func (r CreateReservationRequest) ToInput(userID uuid.UUID) commands.CreateHoldInput {
	resources := make([]queries.ResourceRequest, len(r.Resources))
	for i, line := range r.Resources {
		resources[i] = queries.ResourceRequest{
			ResourceID: line.ResourceID,
			Quantity:   line.Quantity,
		}
	}
	return commands.CreateHoldInput{
		UserID:        userID,
		Kind:          r.Kind,
		LocalDate:     r.Date,
		StartHour:     r.StartHour,
		DurationHours: r.DurationHours,
		Resources:     resources,
		Note:          r.Note,
	}
}
