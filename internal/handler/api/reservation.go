package api

import (
	"net/http"

	reqdto "courtside/internal/handler/dto/request"
	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/handler/httperr"
	"courtside/internal/handler/middleware"
	"courtside/internal/pkg/errs"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qs queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create hold
// @Description Place a time-boxed hold on resource capacity
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Hold request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("user id missing from context"), "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest,
			bindErr, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}

	view, err := h.commands.CreateHold(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Description Get one reservation by id; members see only their own
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("user id missing from context"), "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	// A foreign reservation is indistinguishable from a missing one.
	if view.UserID != userID && !middleware.IsAdmin(c) {
		httperr.AbortWithError(c, http.StatusNotFound,
			errs.New("reservation belongs to another user"), "NOT_FOUND", "Reservation not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List my reservations
// @Description All reservations of the authenticated user, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) GetUserReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("user id missing from context"), "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	items, err := h.queries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	response := make([]*resdto.ReservationListResponse, len(items))
	for i := range items {
		response[i] = resdto.FromReservationListItem(&items[i])
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Cancel reservation
// @Description Cancel a non-terminal reservation; members may cancel only their own
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("user id missing from context"), "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.commands.Cancel(c.Request.Context(), id, userID, middleware.IsAdmin(c)); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Begin payment
// @Description Move a hold into PAYMENT_PENDING when checkout starts
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/payment [post]
func (h *ReservationHandler) BeginPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("user id missing from context"), "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.commands.BeginPayment(c.Request.Context(), id, userID); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest,
			err, "INVALID_REQUEST", "Invalid reservation ID format", nil)
		return uuid.Nil, err
	}
	return id, nil
}
