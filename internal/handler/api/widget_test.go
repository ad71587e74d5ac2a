//go:build unit

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"perfect-widget/internal/domain/alert"
	"perfect-widget/internal/domain/reservation"
	"perfect-widget/internal/handler"
	"perfect-widget/internal/handler/api"
	reqdto "perfect-widget/internal/handler/dto/request"
	resdto "perfect-widget/internal/handler/dto/response"
	"perfect-widget/internal/handler/middleware"
	"perfect-widget/internal/pkg/clock"
	"perfect-widget/internal/pkg/config"
	"perfect-widget/internal/pkg/cookie"
	"perfect-widget/internal/usecase"
	"perfect-widget/tests/common/authtest"
	"perfect-widget/tests/common/builder"
	"perfect-widget/tests/common/httptest"
	"perfect-widget/tests/common/testutil"
	usecasemock "perfect-widget/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var june1 = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

type WidgetHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	cfg          config.Config
	mockCtrl     *gomock.Controller
	auth         *usecasemock.MockAuthenticator
	availability *usecasemock.MockAvailabilityClient
	booking      *usecasemock.MockBookingClient
	sessions     *usecase.WidgetSessions
	jwtHelper    *authtest.JWTHelper
}

func (s *WidgetHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.cfg = config.NewTestConfig()

	s.mockCtrl = gomock.NewController(s.T())
	s.auth = usecasemock.NewMockAuthenticator(s.mockCtrl)
	s.availability = usecasemock.NewMockAvailabilityClient(s.mockCtrl)
	s.booking = usecasemock.NewMockBookingClient(s.mockCtrl)

	clk := clock.NewMockClock(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC))
	s.sessions = usecase.NewWidgetSessions(s.auth, s.availability, s.booking, clk, nil, usecase.SessionOptions{
		TTL:  time.Hour,
		Flow: usecase.FlowOptions{Location: time.UTC, SoftLimitDays: 30, Timeout: time.Second},
	})

	s.jwtHelper = authtest.NewJWTHelper(s.cfg.JWT)
	jwtService := s.jwtHelper.Service(s.T())
	handler.NewRouter(
		s.router,
		s.cfg,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		api.NewWidgetHandler(s.sessions, jwtService, s.cfg),
		middleware.NewSessionMiddleware(usecase.NewSessionResolver(jwtService, s.sessions)),
		middleware.NewRateLimiter(s.cfg.Widget),
	)
}

func (s *WidgetHandlerTestSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *WidgetHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWidgetHandlerSuite(t *testing.T) {
	suite.Run(t, new(WidgetHandlerTestSuite))
}

func (s *WidgetHandlerTestSuite) activate() string {
	s.auth.EXPECT().Authenticate(gomock.Any()).Return(usecase.Restaurant{ID: "r-1", Name: "Chez Go"}, nil)
	s.availability.EXPECT().FetchPartySizes(gomock.Any()).Return([]int{1, 2, 3, 4, 5, 6}, nil)
	token, _ := authtest.ActivateWidget(s.T(), s.router)
	return token
}

func (s *WidgetHandlerTestSuite) selectParty(token string, slots ...reservation.SlotID) resdto.WidgetResponse {
	s.availability.EXPECT().FetchAvailableTimes(gomock.Any(), 4, june1).Return(slots, nil)
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/widget/session/party-size",
		reqdto.PartySizeRequest{PartySize: 4}, token)

	var resp resdto.WidgetResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
	return resp
}

func (s *WidgetHandlerTestSuite) fillContact(token string, b *builder.DraftBuilder) {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/widget/session/contact", b.BuildContactDTO(), token)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}

func (s *WidgetHandlerTestSuite) TestActivate() {
	url := "/api/widget/sessions"

	s.Run("success: returns 201 with token, cookie and a blank form", func() {
		s.auth.EXPECT().Authenticate(gomock.Any()).Return(usecase.Restaurant{ID: "r-1", Name: "Chez Go"}, nil)
		s.availability.EXPECT().FetchPartySizes(gomock.Any()).Return([]int{2, 4}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var resp resdto.ActivateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.NotEmpty(resp.Token)
		s.Equal("Chez Go", resp.Restaurant.Name)
		s.Equal(resdto.ViewForm, resp.Widget.View)
		s.Equal([]int{2, 4}, resp.Widget.PartySizes)
		s.Equal("2024-06-01", resp.Widget.Draft.Date)
		s.False(resp.Widget.Controls.SubmitEnabled)

		sessionCookie := httptest.ExtractCookie(rec, cookie.SessionCookieName)
		s.Require().NotNil(sessionCookie)
		s.True(sessionCookie.HttpOnly)
		s.Equal(resp.Token, sessionCookie.Value)
	})

	s.Run("error: 502 when the API key is rejected", func() {
		s.auth.EXPECT().Authenticate(gomock.Any()).Return(usecase.Restaurant{}, errors.New("http 401"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, reservation.MsgActivationError)
		s.Zero(s.sessions.Len())
	})
}

func (s *WidgetHandlerTestSuite) TestRequestMetadata() {
	s.Run("request id is echoed and exposed to the embedding site", func() {
		rec := httptest.Perform(s.T(), s.router, http.MethodGet, "/health", nil,
			httptest.WithHeader(middleware.RequestIDHeader, "embed-42"))

		s.Equal(http.StatusOK, rec.Code)
		httptest.AssertHeaders(s.T(), rec, map[string]string{
			middleware.RequestIDHeader:         "embed-42",
			"Access-Control-Allow-Origin":      httptest.EmbeddingOrigin,
			"Access-Control-Allow-Credentials": "true",
		})
		s.Contains(strings.ToLower(rec.Header().Get("Access-Control-Expose-Headers")), strings.ToLower(middleware.RequestIDHeader))
	})

	s.Run("a request id is generated when none is sent", func() {
		rec := httptest.Perform(s.T(), s.router, http.MethodGet, "/health", nil)

		_, err := uuid.Parse(rec.Header().Get(middleware.RequestIDHeader))
		s.NoError(err)
	})
}

func (s *WidgetHandlerTestSuite) TestRequireSession() {
	url := "/api/widget/session"

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Widget session required")
	})

	s.Run("error: 401 with a token for an unknown session", func() {
		token := s.jwtHelper.GenerateToken(s.T(), uuid.New())

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired widget session")
	})

	s.Run("error: 401 with an expired token", func() {
		token := s.jwtHelper.CreateExpiredToken(s.T(), uuid.New())

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("success: session cookie is accepted", func() {
		token := s.activate()

		rec := httptest.Perform(s.T(), s.router, http.MethodGet, url, nil,
			httptest.WithCookies(&http.Cookie{Name: cookie.SessionCookieName, Value: token}))
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *WidgetHandlerTestSuite) TestSetPartySize() {
	s.Run("success: availability is loaded", func() {
		token := s.activate()

		resp := s.selectParty(token, "1080", "1140")

		s.Equal([]usecase.TimeOption{{ID: "1080", Label: "6:00 pm"}, {ID: "1140", Label: "7:00 pm"}}, resp.TimeOptions)
		s.Equal(reservation.SlotID("1080"), resp.Draft.Time)
		s.True(resp.Controls.TimeEnabled)
	})

	s.Run("empty availability is reported as a date alert", func() {
		token := s.activate()

		resp := s.selectParty(token)

		s.Equal([]alert.Alert{{Field: reservation.FieldDate, Message: "No reservations available for parties of 4 on 2024-06-01."}}, resp.Alerts)
		s.False(resp.Controls.SubmitEnabled)
	})

	s.Run("error: 400 on validation errors", func() {
		token := s.activate()
		cases := []struct {
			name string
			edit testutil.Edit
		}{
			{name: "missing party size", edit: testutil.Omit("partySize")},
			{name: "zero", edit: testutil.Set("partySize", 0)},
			{name: "one hundred", edit: testutil.Set("partySize", 100)},
			{name: "not a number", edit: testutil.Set("partySize", "four")},
		}
		for _, tc := range cases {
			body := testutil.Body(s.T(), reqdto.PartySizeRequest{PartySize: 4}, tc.edit)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/widget/session/party-size", body, token)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		}
	})

	s.Run("error: 422 when the restaurant does not offer the size", func() {
		token := s.activate()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/widget/session/party-size",
			reqdto.PartySizeRequest{PartySize: 12}, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

func (s *WidgetHandlerTestSuite) TestSetDate() {
	s.Run("past date comes back as today", func() {
		token := s.activate()
		s.selectParty(token, "1140")
		s.availability.EXPECT().FetchAvailableTimes(gomock.Any(), 4, june1).Return([]reservation.SlotID{"1140"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/widget/session/date",
			reqdto.DateRequest{Date: "2024-01-01"}, token)

		var resp resdto.WidgetResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("2024-06-01", resp.Draft.Date)
	})
}

func (s *WidgetHandlerTestSuite) TestSelectTime() {
	s.Run("error: 422 for a slot that was not offered", func() {
		token := s.activate()
		s.selectParty(token, "1140")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/widget/session/time",
			reqdto.TimeRequest{Time: "1200"}, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, reservation.MsgTimeInvalid)
	})
}

func (s *WidgetHandlerTestSuite) TestUpdateContact() {
	s.Run("error: 400 for a malformed email", func() {
		token := s.activate()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/widget/session/contact",
			builder.NewDraftBuilder(june1).WithEmail("not-an-email").BuildContactDTO(), token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("success: omitted fields keep their value", func() {
		token := s.activate()
		s.fillContact(token, builder.NewDraftBuilder(june1).WithEmail("ada@example.com"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/widget/session/contact",
			map[string]any{"phone": "5035550199"}, token)

		var resp resdto.WidgetResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("Ada Lovelace", resp.Draft.Name)
		s.Equal("5035550199", resp.Draft.Phone)
		s.Equal("ada@example.com", resp.Draft.Email)
	})
}

func (s *WidgetHandlerTestSuite) TestSubmitAndConfirm() {
	s.Run("success: review then confirm", func() {
		token := s.activate()
		s.selectParty(token, "1140")
		s.fillContact(token, builder.NewDraftBuilder(june1))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/widget/session/submit", nil, token)
		var review resdto.WidgetResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &review)
		s.Equal(resdto.ViewConfirm, review.View)
		s.Equal(&usecase.Confirmation{PartySize: 4, TimeLabel: "7:00 pm", Date: "2024-06-01", Name: "Ada Lovelace"}, review.Confirmation)

		s.booking.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).Return("res-9", nil)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/widget/session/confirm", nil, token)
		var done resdto.WidgetResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &done)
		s.Equal(resdto.ViewSuccess, done.View)
		s.Equal("res-9", done.ReservationID)
	})

	s.Run("error: 422 lists every invalid field", func() {
		token := s.activate()
		s.selectParty(token, "1140")
		s.fillContact(token, builder.NewDraftBuilder(june1).WithName("").WithPhone("123"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/widget/session/submit", nil, token)

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		var body struct {
			Detail resdto.SubmitRejection `json:"detail"`
		}
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Equal([]reservation.FieldError{
			{Field: reservation.FieldName, Message: reservation.MsgNameLength},
			{Field: reservation.FieldPhone, Message: reservation.MsgPhoneFormat},
		}, body.Detail.Errors)
		s.Equal(reservation.StateEditing, body.Detail.Widget.State)
	})

	s.Run("error: 409 when confirming from the form", func() {
		token := s.activate()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/widget/session/confirm", nil, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 502 with the form alert when booking is rejected", func() {
		token := s.activate()
		s.selectParty(token, "1140")
		s.fillContact(token, builder.NewDraftBuilder(june1))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/widget/session/submit", nil, token)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.booking.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).Return("", errors.New("http 409"))

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/widget/session/confirm", nil, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "There was a problem creating your reservation")
		var body struct {
			Detail resdto.WidgetResponse `json:"detail"`
		}
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Equal(reservation.StateFailed, body.Detail.State)
		s.Equal([]alert.Alert{{Field: reservation.FieldForm, Message: reservation.MsgBookingFailed}}, body.Detail.Alerts)
	})
}

func (s *WidgetHandlerTestSuite) TestCancel() {
	s.Run("success: back to the form with fresh availability", func() {
		token := s.activate()
		s.selectParty(token, "1140")
		s.fillContact(token, builder.NewDraftBuilder(june1))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/widget/session/submit", nil, token)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.availability.EXPECT().FetchAvailableTimes(gomock.Any(), 4, june1).Return([]reservation.SlotID{"1200"}, nil)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/widget/session/cancel", nil, token)

		var resp resdto.WidgetResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(resdto.ViewForm, resp.View)
		s.Nil(resp.Confirmation)
		s.Equal(reservation.SlotID("1200"), resp.Draft.Time)
	})
}

func (s *WidgetHandlerTestSuite) TestDismissAlerts() {
	s.Run("success: field alerts removed", func() {
		token := s.activate()
		s.selectParty(token)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/widget/session/alerts/date", nil, token)

		var resp resdto.WidgetResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Empty(resp.Alerts)
	})

	s.Run("error: 400 for an unknown field", func() {
		token := s.activate()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/widget/session/alerts/colour", nil, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown alert field")
	})
}

func (s *WidgetHandlerTestSuite) TestCloseSession() {
	token := s.activate()

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/widget/session", nil, token)
	s.Equal(http.StatusNoContent, rec.Code)
	s.Zero(s.sessions.Len())

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/widget/session", nil, token)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *WidgetHandlerTestSuite) TestHealth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}
