//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"courtside/internal/handler/api"
	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/pkg/errs"
	"courtside/internal/pkg/jwt"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"
	"courtside/tests/common/builder"
	"courtside/tests/common/httptest"
	"courtside/tests/common/testutil"
	commandsmock "courtside/tests/mock/commands"
	queriesmock "courtside/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const adminToken = "admin-token"

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	userID       uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		if header == "Bearer "+adminToken {
			c.Set("user_role", jwt.RoleAdmin)
		} else {
			c.Set("user_role", jwt.RoleMember)
		}
		c.Next()
	}

	// Setup routes
	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.GET("/reservations", authMiddleware, s.handler.GetUserReservations)
	s.router.GET("/reservations/:id", authMiddleware, s.handler.GetReservation)
	s.router.POST("/reservations/:id/cancel", authMiddleware, s.handler.CancelReservation)
	s.router.POST("/reservations/:id/payment", authMiddleware, s.handler.BeginPayment)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()

	s.Run("success: returns 201 Created with the stored view", func() {
		s.mockCommands.EXPECT().CreateHold(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateHoldInput) (*queries.ReservationView, error) {
				s.Equal(s.userID, in.UserID)
				s.Equal(reqBody.Kind, in.Kind)
				s.Equal(reqBody.Date, in.LocalDate)
				s.Equal(reqBody.DurationHours, in.DurationHours)
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "member-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal("HOLD", response.Status)
		s.Len(response.Resources, 1)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseReservation{
			{name: "missing field: kind", mutate: testutil.Field("kind", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: date", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: durationHours", mutate: testutil.Field("durationHours", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: resources", mutate: testutil.Field("resources", nil), expectCode: http.StatusBadRequest},
			{name: "malformed resource id", mutate: testutil.Field("resources", []map[string]any{{"resourceId": "not-a-uuid", "quantity": 1}}), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "member-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "INVALID_REQUEST", "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses and codes", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
			expectedMsg    string
		}{
			{
				name:           "start hour outside the window",
				commandsError:  commands.ErrInvalidHour,
				expectedStatus: http.StatusBadRequest,
				expectedCode:   "INVALID_HOUR",
				expectedMsg:    "Invalid start hour",
			},
			{
				name:           "duration beyond the venue maximum",
				commandsError:  commands.ErrRuleViolation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedCode:   "RULE_VIOLATION",
				expectedMsg:    "Duration exceeds",
			},
			{
				name:           "kind mismatch between request and catalog",
				commandsError:  commands.ErrTypeMismatch,
				expectedStatus: http.StatusBadRequest,
				expectedCode:   "TYPE_MISMATCH",
				expectedMsg:    "Resource kind mismatch",
			},
			{
				name:           "slot taken carries the evaluator reason verbatim",
				commandsError:  errs.Mark(errs.New("Cancha 1 is already booked"), commands.ErrNotAvailable),
				expectedStatus: http.StatusConflict,
				expectedCode:   "NOT_AVAILABLE",
				expectedMsg:    "Cancha 1 is already booked",
			},
			{
				name:           "active hold of the same kind",
				commandsError:  commands.ErrActiveHoldExists,
				expectedStatus: http.StatusConflict,
				expectedCode:   "ACTIVE_HOLD_EXISTS",
				expectedMsg:    "active hold already exists",
			},
			{
				name:           "unknown resource id",
				commandsError:  commands.ErrInvalidResource,
				expectedStatus: http.StatusNotFound,
				expectedCode:   "INVALID_RESOURCE",
				expectedMsg:    "Unknown resource",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedCode:   "INTERNAL_ERROR",
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateHold(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "member-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	b := builder.NewReservationBuilder()
	url := "/reservations/" + b.ReservationID.String()

	s.Run("success: owner sees their reservation", func() {
		view := b.BuildView()
		view.UserID = s.userID
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ReservationID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "member-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(b.ReservationID, response.ID)
		s.Equal(b.TotalCents, response.TotalCents)
	})

	s.Run("error: foreign reservation reads as 404 for members", func() {
		view := b.BuildView() // different owner
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ReservationID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "member-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	})

	s.Run("success: admins see any reservation", func() {
		view := b.BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ReservationID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, adminToken)

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.UserID, response.UserID)
	})

	s.Run("error: 404 Not Found for unknown id", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ReservationID).
			Return(nil, queries.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "member-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND", "")
	})

	s.Run("error: 400 Bad Request for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "member-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_REQUEST", "Invalid reservation ID")
	})
}

// ================================================================================
// TestGetUserReservations
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetUserReservations() {
	url := "/reservations"

	s.Run("success: returns the caller's reservations", func() {
		items := []queries.ReservationListItem{
			builder.NewReservationBuilder().BuildListItem(),
			builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
				b.Kind = "TABLE_ROW"
				b.Status = "CONFIRMED"
			}).BuildListItem(),
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "member-token")

		var response []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("CONFIRMED", response[1].Status)
	})

	s.Run("success: empty list for a new user", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return([]queries.ReservationListItem{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "member-token")

		var response []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED", "")
	})
}

// ================================================================================
// TestCancelReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancel"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.userID, false).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "member-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: admins cancel with the override flag", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.userID, true).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 Forbidden for foreign reservations", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.userID, false).
			Return(commands.ErrNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "member-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "UNAUTHORIZED", "another user")
	})

	s.Run("error: 409 Conflict for terminal reservations", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.userID, false).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "member-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "INVALID_STATE", "")
	})
}

// ================================================================================
// TestBeginPayment
// ================================================================================

func (s *ReservationHandlerTestSuite) TestBeginPayment() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/payment"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().BeginPayment(gomock.Any(), id, s.userID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "member-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when not in HOLD", func() {
		s.mockCommands.EXPECT().BeginPayment(gomock.Any(), id, s.userID).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "member-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "INVALID_STATE", "")
	})

	s.Run("error: 404 Not Found for unknown id", func() {
		s.mockCommands.EXPECT().BeginPayment(gomock.Any(), id, s.userID).
			Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "member-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND", "")
	})
}
