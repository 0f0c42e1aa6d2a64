package api

import (
	"net/http"

	reqdto "courtside/internal/handler/dto/request"
	"courtside/internal/handler/httperr"
	"courtside/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// PaymentHandler receives provider callbacks. Delivery is at-least-once, so
// every operation behind it is idempotent.
type PaymentHandler struct {
	commands commands.ReservationCommands
}

func NewPaymentHandler(cmds commands.ReservationCommands) *PaymentHandler {
	return &PaymentHandler{commands: cmds}
}

// @Summary Record payment result
// @Description Apply a provider-reported payment outcome to a reservation
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentResultRequest true "Payment outcome"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /payments/result [post]
func (h *PaymentHandler) RecordResult(c *gin.Context) {
	var req reqdto.PaymentResultRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest,
			bindErr, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}

	if err := h.commands.RecordPaymentResult(c.Request.Context(), req.ToInput()); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
