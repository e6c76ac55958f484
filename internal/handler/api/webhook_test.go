//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"cardshop/internal/handler/api"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/commands"
	"cardshop/tests/common/httptest"
	commandsmock "cardshop/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	mockEvents *commandsmock.MockPaymentEventCommands
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockEvents = commandsmock.NewMockPaymentEventCommands(s.mockCtrl)
	h := api.NewWebhookHandler(s.mockEvents)

	s.router.POST("/webhooks/payments", h.Payments)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) TestPayments() {
	url := "/webhooks/payments"
	// Key order and spacing are significant: the signature covers these bytes.
	payload := []byte(`{"type":"checkout.session.completed",  "id":"evt_1"}`)
	signature := "t=1773489600,v1=abcdef"
	headers := map[string]string{"Payment-Signature": signature}

	s.Run("success: passes the raw body and header through", func() {
		s.mockEvents.EXPECT().HandleEvent(gomock.Any(), payload, signature).
			Return(commands.OutcomeProcessed, nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("processed", body["outcome"])
		s.Equal(true, body["received"])
	})

	s.Run("success: duplicates are acknowledged", func() {
		s.mockEvents.EXPECT().HandleEvent(gomock.Any(), payload, signature).
			Return(commands.OutcomeDuplicate, nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("duplicate", body["outcome"])
	})

	s.Run("error: maps processing failures so the provider retries only what can succeed", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "bad signature is terminal",
				commandsError:  errs.Mark(errors.New("signature mismatch"), commands.ErrInvalidSignature),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid signature",
			},
			{
				name:           "malformed payload is terminal",
				commandsError:  errs.Mark(errors.New("unexpected EOF"), commands.ErrMalformedPayload),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Malformed event",
			},
			{
				name:           "concurrent delivery is retried",
				commandsError:  commands.ErrEventInProgress,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "being processed",
			},
			{
				name:           "unresolved items are retried",
				commandsError:  errs.Wrap(commands.ErrItemsUnresolved, "reservation gone"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Order items unavailable",
			},
			{
				name:           "database failure is retried",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockEvents.EXPECT().HandleEvent(gomock.Any(), payload, signature).
					Return(commands.EventOutcome(""), tc.commandsError).Times(1)

				rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: missing signature header still reaches verification", func() {
		s.mockEvents.EXPECT().HandleEvent(gomock.Any(), payload, "").
			Return(commands.EventOutcome(""), errs.Mark(errors.New("missing header"), commands.ErrInvalidSignature)).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid signature")
	})
}
