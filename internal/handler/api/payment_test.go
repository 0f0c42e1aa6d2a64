//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"courtside/internal/handler/api"
	"courtside/internal/usecase/commands"
	"courtside/tests/common/builder"
	"courtside/tests/common/httptest"
	"courtside/tests/common/testutil"
	commandsmock "courtside/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands)

	// Provider callbacks are authenticated at the edge, no middleware here.
	s.router.POST("/payments/result", s.handler.RecordResult)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestRecordResult() {
	url := "/payments/result"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildPaymentRequestDTO()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().RecordPaymentResult(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.PaymentResultInput) error {
				s.Equal(b.ReservationID, in.ReservationID)
				s.Equal(commands.OutcomePaid, in.Outcome)
				s.Equal(b.DepositCents, in.PaidCents)
				return nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: duplicate PAID callback is acknowledged", func() {
		s.mockCommands.EXPECT().RecordPaymentResult(gomock.Any(), gomock.Any()).
			Return(nil).Times(2)

		for range 2 {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
			s.Equal(http.StatusNoContent, rec.Code)
		}
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseReservation{
			{name: "missing field: reservationId", mutate: testutil.Field("reservationId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: outcome", mutate: testutil.Field("outcome", nil), expectCode: http.StatusBadRequest},
			{name: "malformed reservation id", mutate: testutil.Field("reservationId", "not-a-uuid"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "INVALID_REQUEST", "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses and codes", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{
				name:           "unknown reservation",
				commandsError:  commands.ErrReservationNotFound,
				expectedStatus: http.StatusNotFound,
				expectedCode:   "NOT_FOUND",
			},
			{
				name:           "amount mismatch",
				commandsError:  commands.ErrAmountMismatch,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedCode:   "AMOUNT_MISMATCH",
			},
			{
				name:           "outcome not applicable in current state",
				commandsError:  commands.ErrInvalidState,
				expectedStatus: http.StatusConflict,
				expectedCode:   "INVALID_STATE",
			},
			{
				name:           "unrecognized outcome value",
				commandsError:  commands.ErrInvalidRequest,
				expectedStatus: http.StatusBadRequest,
				expectedCode:   "INVALID_REQUEST",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().RecordPaymentResult(gomock.Any(), gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode, "")
			})
		}
	})
}
