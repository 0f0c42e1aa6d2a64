//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"courtside/internal/domain/resource"
	"courtside/internal/handler/api"
	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/usecase/queries"
	"courtside/tests/common/httptest"
	queriesmock "courtside/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockAvailability)

	s.router.GET("/availability", s.handler.GetDayGrid)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGetDayGrid() {
	grid := &queries.DayGrid{
		Date:          "2026-09-15",
		Kind:          "FIELD",
		DurationHours: 2,
		Resources: []queries.ResourceDaySlots{
			{
				Resource: queries.ResourceSnapshot{ID: uuid.New(), Kind: resource.KindField, Name: "Cancha 1", Capacity: 1},
				Slots: []queries.Slot{
					{Hour: 8, Status: queries.SlotAvailable},
					{Hour: 9, Status: queries.SlotConfirmed},
				},
			},
		},
		Aggregate: []queries.Slot{
			{Hour: 8, Status: queries.SlotAvailable},
			{Hour: 9, Status: queries.SlotHold},
		},
	}

	s.Run("success: returns 200 OK with the rendered grid", func() {
		s.mockAvailability.EXPECT().DayGrid(gomock.Any(), "2026-09-15", resource.KindField, 2).
			Return(grid, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router,
			http.MethodGet, "/availability?date=2026-09-15&kind=FIELD&duration=2", nil, "")

		var response resdto.DayGridResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("2026-09-15", response.Date)
		s.Equal(2, response.DurationHours)
		s.Len(response.Resources, 1)
		s.Equal("Cancha 1", response.Resources[0].Name)
		s.Equal("CONFIRMED", response.Resources[0].Slots[1].Status)
		s.Equal("HOLD", response.Aggregate[1].Status)
	})

	s.Run("success: duration defaults to 1", func() {
		s.mockAvailability.EXPECT().DayGrid(gomock.Any(), "2026-09-15", resource.KindTableRow, 1).
			Return(&queries.DayGrid{Date: "2026-09-15", Kind: "TABLE_ROW", DurationHours: 1}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router,
			http.MethodGet, "/availability?date=2026-09-15&kind=TABLE_ROW", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request without date", func() {
		rec := httptest.PerformRequest(s.T(), s.router,
			http.MethodGet, "/availability?kind=FIELD", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_DATE", "required")
	})

	s.Run("error: 400 Bad Request for unknown kind", func() {
		rec := httptest.PerformRequest(s.T(), s.router,
			http.MethodGet, "/availability?date=2026-09-15&kind=POOL", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_TYPE", "")
	})

	s.Run("error: 400 Bad Request for non-numeric duration", func() {
		rec := httptest.PerformRequest(s.T(), s.router,
			http.MethodGet, "/availability?date=2026-09-15&kind=FIELD&duration=two", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_DURATION", "")
	})

	s.Run("error: maps an out-of-range duration from the usecase", func() {
		s.mockAvailability.EXPECT().DayGrid(gomock.Any(), "2026-09-15", resource.KindField, 9).
			Return(nil, queries.ErrInvalidRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router,
			http.MethodGet, "/availability?date=2026-09-15&kind=FIELD&duration=9", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_DURATION", "")
	})

	s.Run("error: maps a malformed date from the usecase", func() {
		s.mockAvailability.EXPECT().DayGrid(gomock.Any(), "15/09/2026", resource.KindField, 1).
			Return(nil, queries.ErrInvalidDate).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router,
			http.MethodGet, "/availability?date=15%2F09%2F2026&kind=FIELD", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_DATE", "")
	})
}
