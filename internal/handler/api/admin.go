package api

import (
	"net/http"

	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/handler/httperr"
	"courtside/internal/pkg/errs"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	commands commands.ReservationCommands
	sweeper  commands.SweeperCommands
	queries  queries.ReservationQueries
}

func NewAdminHandler(cmds commands.ReservationCommands, sweeper commands.SweeperCommands, qs queries.ReservationQueries) *AdminHandler {
	return &AdminHandler{
		commands: cmds,
		sweeper:  sweeper,
		queries:  qs,
	}
}

// @Summary Approve reservation
// @Description Confirm a holding reservation, bypassing payment verification
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/approve [post]
func (h *AdminHandler) ApproveReservation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	if err := h.commands.Approve(c.Request.Context(), id); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reject reservation
// @Description Cancel a holding reservation administratively
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/reject [post]
func (h *AdminHandler) RejectReservation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	if err := h.commands.Reject(c.Request.Context(), id); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List reservations for a date
// @Description Every reservation touching a venue-local date, optionally filtered by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param date query string true "Venue-local date (YYYY-MM-DD)"
// @Param status query string false "Status filter"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/reservations [get]
func (h *AdminHandler) GetReservations(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("missing date"), "INVALID_DATE", "Query parameter 'date' is required", nil)
		return
	}

	views, err := h.queries.ListByDate(c.Request.Context(), date, c.Query("status"))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	response := make([]*resdto.ReservationResponse, len(views))
	for i := range views {
		response[i] = resdto.FromReservationView(&views[i])
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Admin day calendar
// @Description All resources and every occupying reservation touching a date
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param date query string true "Venue-local date (YYYY-MM-DD)"
// @Success 200 {object} resdto.CalendarDayResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/calendar [get]
func (h *AdminHandler) GetCalendar(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("missing date"), "INVALID_DATE", "Query parameter 'date' is required", nil)
		return
	}

	day, err := h.queries.CalendarDay(c.Request.Context(), date)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarDay(day))
}

// @Summary Run expiry sweep
// @Description Transition lapsed holds to EXPIRED; idempotent
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} httperr.Response
// @Router /admin/sweep [post]
func (h *AdminHandler) RunSweep(c *gin.Context) {
	result, err := h.sweeper.Sweep(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
