package api

import (
	"net/http"
	"strconv"

	"courtside/internal/domain/resource"
	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/handler/httperr"
	"courtside/internal/pkg/errs"
	"courtside/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary Day availability grid
// @Description Per-resource and per-kind hour slots for one venue-local date
// @Tags availability
// @Produce json
// @Param date query string true "Venue-local date (YYYY-MM-DD)"
// @Param kind query string true "Resource kind (FIELD or TABLE_ROW)"
// @Param duration query int false "Candidate block duration in hours" default(1)
// @Success 200 {object} resdto.DayGridResponse
// @Failure 400 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) GetDayGrid(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("missing date"), "INVALID_DATE", "Query parameter 'date' is required", nil)
		return
	}

	kind, err := resource.NewKind(c.Query("kind"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest,
			err, "INVALID_TYPE", "Unknown resource kind", nil)
		return
	}

	duration := 1
	if raw := c.Query("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest,
				err, "INVALID_DURATION", "Invalid duration", nil)
			return
		}
	}

	grid, err := h.availability.DayGrid(c.Request.Context(), date, kind, duration)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayGrid(grid))
}
