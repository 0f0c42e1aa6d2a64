package response

import (
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	Hour   int    `json:"hour"`
	Status string `json:"status"`
}

type ResourceSlotsResponse struct {
	ResourceID uuid.UUID      `json:"resourceId"`
	Name       string         `json:"name"`
	Capacity   int            `json:"capacity"`
	Slots      []SlotResponse `json:"slots"`
}

type DayGridResponse struct {
	Date          string                  `json:"date"`
	Kind          string                  `json:"kind"`
	DurationHours int                     `json:"durationHours"`
	Resources     []ResourceSlotsResponse `json:"resources"`
	Aggregate     []SlotResponse          `json:"aggregate"`
}

func FromDayGrid(grid *queries.DayGrid) *DayGridResponse {
	resources := make([]ResourceSlotsResponse, len(grid.Resources))
	for i, rd := range grid.Resources {
		resources[i] = ResourceSlotsResponse{
			ResourceID: rd.Resource.ID,
			Name:       rd.Resource.Name,
			Capacity:   rd.Resource.Capacity,
			Slots:      fromSlots(rd.Slots),
		}
	}
	return &DayGridResponse{
		Date:          grid.Date,
		Kind:          grid.Kind,
		DurationHours: grid.DurationHours,
		Resources:     resources,
		Aggregate:     fromSlots(grid.Aggregate),
	}
}

func fromSlots(slots []queries.Slot) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{Hour: s.Hour, Status: string(s.Status)}
	}
	return out
}
