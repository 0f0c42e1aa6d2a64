package response

import (
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type CalendarResourceResponse struct {
	ID       uuid.UUID `json:"id"`
	Kind     string    `json:"kind"`
	Name     string    `json:"name"`
	Capacity int       `json:"capacity"`
}

type CalendarDayResponse struct {
	Date         string                     `json:"date"`
	Resources    []CalendarResourceResponse `json:"resources"`
	Reservations []ReservationResponse      `json:"reservations"`
}

func FromCalendarDay(day *queries.CalendarDay) *CalendarDayResponse {
	resources := make([]CalendarResourceResponse, len(day.Resources))
	for i, r := range day.Resources {
		resources[i] = CalendarResourceResponse{
			ID:       r.ID,
			Kind:     r.Kind.String(),
			Name:     r.Name,
			Capacity: r.Capacity,
		}
	}
	reservations := make([]ReservationResponse, len(day.Reservations))
	for i := range day.Reservations {
		reservations[i] = *FromReservationView(&day.Reservations[i])
	}
	return &CalendarDayResponse{
		Date:         day.Date,
		Resources:    resources,
		Reservations: reservations,
	}
}
