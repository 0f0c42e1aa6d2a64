package response

import (
	"time"

	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResourceResponse struct {
	ResourceID uuid.UUID `json:"resourceId"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
}

type ReservationResponse struct {
	ID            uuid.UUID                     `json:"id"`
	UserID        uuid.UUID                     `json:"userId"`
	Kind          string                        `json:"kind"`
	StartTime     time.Time                     `json:"startTime"`
	EndTime       time.Time                     `json:"endTime"`
	Status        string                        `json:"status"`
	HoldExpiresAt *time.Time                    `json:"holdExpiresAt,omitempty"`
	TotalCents    int64                         `json:"totalCents"`
	DepositCents  int64                         `json:"depositCents"`
	Note          string                        `json:"note,omitempty"`
	Resources     []ReservationResourceResponse `json:"resources"`
	CreatedAt     time.Time                     `json:"createdAt"`
	UpdatedAt     time.Time                     `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SweepResponse struct {
	ExpiredCount int         `json:"expiredCount"`
	ExpiredIDs   []uuid.UUID `json:"expiredIds"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	resources := make([]ReservationResourceResponse, len(rm.Resources))
	for i, r := range rm.Resources {
		resources[i] = ReservationResourceResponse{
			ResourceID: r.ResourceID,
			Name:       r.Name,
			Quantity:   r.Quantity,
		}
	}
	return &ReservationResponse{
		ID:            rm.ID,
		UserID:        rm.UserID,
		Kind:          rm.Kind,
		StartTime:     rm.StartTime,
		EndTime:       rm.EndTime,
		Status:        rm.Status,
		HoldExpiresAt: rm.HoldExpiresAt,
		TotalCents:    rm.TotalCents,
		DepositCents:  rm.DepositCents,
		Note:          rm.Note,
		Resources:     resources,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:         rm.ID,
		Kind:       rm.Kind,
		StartTime:  rm.StartTime,
		EndTime:    rm.EndTime,
		Status:     rm.Status,
		TotalCents: rm.TotalCents,
		CreatedAt:  rm.CreatedAt,
	}
}

func FromSweepResult(result *commands.SweepResult) *SweepResponse {
	ids := result.IDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return &SweepResponse{
		ExpiredCount: result.Count,
		ExpiredIDs:   ids,
	}
}
