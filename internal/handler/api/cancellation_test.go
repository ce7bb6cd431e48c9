//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"cancel-saga/internal/handler/api"
	reqdto "cancel-saga/internal/handler/dto/request"
	"cancel-saga/internal/handler/httperr"
	"cancel-saga/internal/handler/middleware"
	"cancel-saga/internal/pkg/errs"
	"cancel-saga/internal/pkg/storeconfig"
	"cancel-saga/internal/usecase/commands"
	"cancel-saga/tests/common/builder"
	"cancel-saga/tests/common/httptest"
	"cancel-saga/tests/common/testutil"
	commandsmock "cancel-saga/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const storefrontOrigin = "https://shop.acme.test"

func newRegistry(s *suite.Suite) *storeconfig.Registry {
	reg, err := storeconfig.NewRegistry(storeconfig.Store{
		Alias:   "acme",
		Origins: []string{storefrontOrigin},
		Commerce: storeconfig.CommerceSettings{
			Domain:                "acme.myshopify.com",
			CompensationVariantID: "gid://shopify/ProductVariant/1",
		},
	})
	s.Require().NoError(err)
	return reg
}

type CancellationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCancellationCommands
	handler      *api.CancellationHandler
}

func (s *CancellationHandlerTestSuite) SetupSuite() {
	s.Require().NoError(reqdto.RegisterValidators())
}

func (s *CancellationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCancellationCommands(s.mockCtrl)
	s.handler = api.NewCancellationHandler(s.mockCommands)
	s.router = s.buildRouter(false)
}

func (s *CancellationHandlerTestSuite) buildRouter(legacy bool) *gin.Engine {
	r := gin.New()
	r.Use(httperr.UseLegacyStatus(legacy), middleware.ErrorHandler())
	g := r.Group("", middleware.RequireStore(newRegistry(&s.Suite)))
	g.POST("/subscription/cancel", s.handler.Cancel)
	g.POST("/token/subscription/validate", s.handler.ValidateToken)
	return r
}

func (s *CancellationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCancellationHandlerSuite(t *testing.T) {
	suite.Run(t, new(CancellationHandlerTestSuite))
}

func originHeader() map[string]string {
	return map[string]string{"Origin": storefrontOrigin}
}

type testCaseCancel struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *CancellationHandlerTestSuite) TestCancel() {
	url := "/subscription/cancel"
	b := builder.NewCancellationBuilder()
	reqBody := b.BuildCancelRequestDTO()

	s.Run("success: returns 200 with the invoice details", func() {
		want := b.BuildCommand()
		want.Email = "jane@example.com"
		s.mockCommands.EXPECT().Cancel(gomock.Any(), want).Return(b.BuildAwaitingResult(), nil).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("email", "Jane@Example.COM"))
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, originHeader())

		var resp map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("AWAITING_PAYMENT", resp["outcome"])
		s.Equal(b.DraftOrder, resp["draftOrder"])
		s.EqualValues(16, resp["quantity"])
		s.NotEmpty(resp["message"])
	})

	s.Run("success: immediate cancellation omits invoice fields", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any()).
			Return(&commands.CancelResult{Outcome: commands.OutcomeCancelled, SubscriptionRef: "sub-1"}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, originHeader())

		var resp map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("CANCELLED", resp["outcome"])
		s.NotContains(resp, "draftOrder")
		s.NotContains(resp, "paymentDue")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseCancel{
			{name: "missing email", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "malformed email", mutate: testutil.Field("email", "jane"), expectCode: http.StatusBadRequest},
			{name: "missing token", mutate: testutil.Field("token", nil), expectCode: http.StatusBadRequest},
			{name: "token too short", mutate: testutil.Field("token", "A1B2C"), expectCode: http.StatusBadRequest},
			{name: "token too long", mutate: testutil.Field("token", "A1B2C3D"), expectCode: http.StatusBadRequest},
			{name: "token with symbols", mutate: testutil.Field("token", "A1B2-3"), expectCode: http.StatusBadRequest},
			{name: "missing subscription", mutate: testutil.Field("subscription", nil), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, originHeader())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: store is chosen by origin", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Origin": "https://evil.test"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Unknown store")

		rec = httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Origin")
	})

	s.Run("error: usecase failures map to statuses", func() {
		cases := []struct {
			name string
			err  error
			code int
		}{
			{name: "identity", err: commands.ErrIdentityInvalid, code: http.StatusUnauthorized},
			{name: "cycles", err: commands.ErrCyclesExceeded, code: http.StatusUnprocessableEntity},
			{name: "uncomputable", err: commands.ErrUncomputableCompensation, code: http.StatusUnprocessableEntity},
			{name: "upstream", err: errs.Mark(errors.New("timeout"), commands.ErrExternalUnavailable), code: http.StatusBadGateway},
			{name: "ledger down", err: commands.ErrLedgerUnavailable, code: http.StatusServiceUnavailable},
			{name: "orphaned draft", err: commands.ErrLedgerInconsistency, code: http.StatusInternalServerError},
			{name: "unexpected", err: errors.New("boom"), code: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, originHeader())
				httptest.AssertErrorResponse(s.T(), rec, tc.code, "")
			})
		}
	})

	s.Run("legacy mode sends every error as 500", func() {
		legacy := s.buildRouter(true)
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any()).Return(nil, commands.ErrIdentityInvalid).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), legacy, http.MethodPost, url, reqBody, originHeader())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Verification failed")

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("token", "bad"))
		rec = httptest.PerformRequestWithHeaders(s.T(), legacy, http.MethodPost, url, body, originHeader())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Invalid request")
	})
}

// ================================================================================
// TestValidateToken
// ================================================================================

func (s *CancellationHandlerTestSuite) TestValidateToken() {
	url := "/token/subscription/validate"
	b := builder.NewCancellationBuilder()
	reqBody := b.BuildValidateRequestDTO()

	s.Run("success: forwards the cancel session", func() {
		want := b.BuildCommand()
		want.CancelSessionRef = b.CancelSessionID
		s.mockCommands.EXPECT().Cancel(gomock.Any(), want).Return(b.BuildAwaitingResult(), nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, originHeader())
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: cancel session is required", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("cancelSessionId", nil))
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, originHeader())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
