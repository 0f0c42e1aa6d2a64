package api

import (
	"errors"
	"net/http"

	"courtside/internal/handler/httperr"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	status  int
	code    string
	message string
}

// verbatim marks codes whose message is the error text itself, e.g. the
// availability evaluator's reason string.
var verbatimCodes = map[string]bool{
	"NOT_AVAILABLE": true,
}

var commandErrorMappings = []struct {
	err     error
	mapping errorMapping
}{
	{commands.ErrInvalidRequest, errorMapping{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request"}},
	{commands.ErrInvalidDate, errorMapping{http.StatusBadRequest, "INVALID_DATE", "Invalid or past date"}},
	{commands.ErrInvalidHour, errorMapping{http.StatusBadRequest, "INVALID_HOUR", "Invalid start hour"}},
	{commands.ErrInvalidDuration, errorMapping{http.StatusBadRequest, "INVALID_DURATION", "Invalid duration"}},
	{commands.ErrRuleViolation, errorMapping{http.StatusUnprocessableEntity, "RULE_VIOLATION", "Duration exceeds the venue maximum"}},
	{commands.ErrTooManyResources, errorMapping{http.StatusBadRequest, "TOO_MANY_RESOURCES", "Too many resources requested"}},
	{commands.ErrInvalidType, errorMapping{http.StatusBadRequest, "INVALID_TYPE", "Unknown resource kind"}},
	{commands.ErrInvalidResource, errorMapping{http.StatusNotFound, "INVALID_RESOURCE", "Unknown resource"}},
	{commands.ErrTypeMismatch, errorMapping{http.StatusBadRequest, "TYPE_MISMATCH", "Resource kind mismatch"}},
	{commands.ErrNotAvailable, errorMapping{http.StatusConflict, "NOT_AVAILABLE", ""}},
	{commands.ErrActiveHoldExists, errorMapping{http.StatusConflict, "ACTIVE_HOLD_EXISTS", "An active hold already exists for this kind"}},
	{commands.ErrReservationNotFound, errorMapping{http.StatusNotFound, "NOT_FOUND", "Reservation not found"}},
	{commands.ErrInvalidState, errorMapping{http.StatusConflict, "INVALID_STATE", "Reservation state does not permit this operation"}},
	{commands.ErrAmountMismatch, errorMapping{http.StatusUnprocessableEntity, "AMOUNT_MISMATCH", "Paid amount does not match the deposit"}},
	{commands.ErrNotOwned, errorMapping{http.StatusForbidden, "UNAUTHORIZED", "Reservation belongs to another user"}},
	{queries.ErrReservationNotFound, errorMapping{http.StatusNotFound, "NOT_FOUND", "Reservation not found"}},
	{queries.ErrInvalidDate, errorMapping{http.StatusBadRequest, "INVALID_DATE", "Invalid date"}},
	{queries.ErrInvalidStatus, errorMapping{http.StatusBadRequest, "INVALID_REQUEST", "Unknown status filter"}},
	{queries.ErrInvalidRange, errorMapping{http.StatusBadRequest, "INVALID_DURATION", "Invalid duration"}},
	{queries.ErrInvalidResource, errorMapping{http.StatusNotFound, "INVALID_RESOURCE", "Unknown resource"}},
	{queries.ErrTypeMismatch, errorMapping{http.StatusBadRequest, "TYPE_MISMATCH", "Resource kind mismatch"}},
}

// abortWithUsecaseError translates usecase sentinels into the structured
// error body. Store detail never reaches the client.
func abortWithUsecaseError(c *gin.Context, err error) {
	for _, m := range commandErrorMappings {
		if errors.Is(err, m.err) {
			msg := m.mapping.message
			if verbatimCodes[m.mapping.code] {
				msg = err.Error()
			}
			httperr.AbortWithError(c, m.mapping.status, err, m.mapping.code, msg, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Internal server error", nil)
}
