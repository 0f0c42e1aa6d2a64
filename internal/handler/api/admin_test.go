//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"courtside/internal/domain/resource"
	"courtside/internal/handler/api"
	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/pkg/jwt"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"
	"courtside/tests/common/builder"
	"courtside/tests/common/httptest"
	commandsmock "courtside/tests/mock/commands"
	queriesmock "courtside/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockSweeper  *commandsmock.MockSweeperCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.AdminHandler
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockSweeper = commandsmock.NewMockSweeperCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewAdminHandler(s.mockCommands, s.mockSweeper, s.mockQueries)

	// Mock authentication middleware: admin role required on every route
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", jwt.RoleAdmin)
		c.Next()
	}

	s.router.GET("/admin/calendar", authMiddleware, s.handler.GetCalendar)
	s.router.GET("/admin/reservations", authMiddleware, s.handler.GetReservations)
	s.router.POST("/admin/reservations/:id/approve", authMiddleware, s.handler.ApproveReservation)
	s.router.POST("/admin/reservations/:id/reject", authMiddleware, s.handler.RejectReservation)
	s.router.POST("/admin/sweep", authMiddleware, s.handler.RunSweep)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestApproveReservation() {
	id := uuid.New()
	url := "/admin/reservations/" + id.String() + "/approve"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict for confirmed reservations", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), id).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "INVALID_STATE", "")
	})

	s.Run("error: 401 Unauthorized without admin token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "member-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED", "")
	})
}

func (s *AdminHandlerTestSuite) TestRejectReservation() {
	id := uuid.New()
	url := "/admin/reservations/" + id.String() + "/reject"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown id", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), id).
			Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND", "")
	})
}

func (s *AdminHandlerTestSuite) TestGetReservations() {
	s.Run("success: lists reservations for the date", func() {
		views := []queries.ReservationView{
			*builder.NewReservationBuilder().BuildView(),
			*builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
				b.Status = "EXPIRED"
			}).BuildView(),
		}
		s.mockQueries.EXPECT().ListByDate(gomock.Any(), "2026-09-15", "").
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/admin/reservations?date=2026-09-15", nil, adminToken)

		var response []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("EXPIRED", response[1].Status)
	})

	s.Run("success: passes the status filter through", func() {
		s.mockQueries.EXPECT().ListByDate(gomock.Any(), "2026-09-15", "CONFIRMED").
			Return([]queries.ReservationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/admin/reservations?date=2026-09-15&status=CONFIRMED", nil, adminToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for an unknown status", func() {
		s.mockQueries.EXPECT().ListByDate(gomock.Any(), "2026-09-15", "PAID").
			Return(nil, queries.ErrInvalidStatus).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/admin/reservations?date=2026-09-15&status=PAID", nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_REQUEST", "status")
	})

	s.Run("error: 400 Bad Request without date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations", nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_DATE", "required")
	})
}

func (s *AdminHandlerTestSuite) TestGetCalendar() {
	url := "/admin/calendar?date=2026-09-15"

	s.Run("success: returns resources and occupying reservations", func() {
		view := builder.NewReservationBuilder().BuildView()
		day := &queries.CalendarDay{
			Date: "2026-09-15",
			Resources: []queries.ResourceSnapshot{
				{ID: uuid.New(), Kind: resource.KindField, Name: "Cancha 1", Capacity: 1},
				{ID: uuid.New(), Kind: resource.KindTableRow, Name: "Mesa A", Capacity: 4},
			},
			Reservations: []queries.ReservationView{*view},
		}
		s.mockQueries.EXPECT().CalendarDay(gomock.Any(), "2026-09-15").
			Return(day, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, adminToken)

		var response resdto.CalendarDayResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("2026-09-15", response.Date)
		s.Len(response.Resources, 2)
		s.Len(response.Reservations, 1)
		s.Equal(view.ID, response.Reservations[0].ID)
		s.NotNil(response.Reservations[0].HoldExpiresAt)
	})

	s.Run("error: 400 Bad Request without date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/calendar", nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_DATE", "required")
	})

	s.Run("error: 400 Bad Request for malformed date", func() {
		s.mockQueries.EXPECT().CalendarDay(gomock.Any(), "yesterday").
			Return(nil, queries.ErrInvalidDate).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/calendar?date=yesterday", nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_DATE", "")
	})
}

func (s *AdminHandlerTestSuite) TestRunSweep() {
	url := "/admin/sweep"

	s.Run("success: reports expired reservations", func() {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		s.mockSweeper.EXPECT().Sweep(gomock.Any()).
			Return(&commands.SweepResult{Count: 2, IDs: ids}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)

		var response resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(2, response.ExpiredCount)
		s.Equal(ids, response.ExpiredIDs)
	})

	s.Run("success: empty sweep serializes ids as an empty array", func() {
		s.mockSweeper.EXPECT().Sweep(gomock.Any()).
			Return(&commands.SweepResult{Count: 0}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)

		var response resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Zero(response.ExpiredCount)
		s.NotNil(response.ExpiredIDs)
		s.Empty(response.ExpiredIDs)
	})
}
