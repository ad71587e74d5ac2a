package api

import (
	"log/slog"
	"net/http"

	"perfect-widget/internal/domain/reservation"
	reqdto "perfect-widget/internal/handler/dto/request"
	resdto "perfect-widget/internal/handler/dto/response"
	"perfect-widget/internal/handler/httperr"
	"perfect-widget/internal/handler/middleware"
	"perfect-widget/internal/pkg/config"
	"perfect-widget/internal/pkg/cookie"
	"perfect-widget/internal/pkg/errs"
	"perfect-widget/internal/pkg/jwt"
	"perfect-widget/internal/pkg/patch"
	"perfect-widget/internal/usecase"

	"github.com/gin-gonic/gin"
)

type WidgetHandler struct {
	sessions   *usecase.WidgetSessions
	jwtService *jwt.Service
	cfg        config.Config
}

func NewWidgetHandler(sessions *usecase.WidgetSessions, jwtService *jwt.Service, cfg config.Config) *WidgetHandler {
	return &WidgetHandler{
		sessions:   sessions,
		jwtService: jwtService,
		cfg:        cfg,
	}
}

// @Summary Activate widget
// @Description Authenticate the configured API key and start a widget session
// @Tags widget
// @Produce json
// @Success 201 {object} resdto.ActivateResponse
// @Failure 502 {object} httperr.Response
// @Router /widget/sessions [post]
func (h *WidgetHandler) Activate(c *gin.Context) {
	session, err := h.sessions.Activate(c.Request.Context())
	if err != nil {
		if errs.Is(err, errs.ErrAuthFailed) {
			httperr.AbortWithError(c, http.StatusBadGateway, err, reservation.MsgActivationError, nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	token, err := h.jwtService.GenerateToken(session.ID, session.Restaurant.ID)
	if err != nil {
		_ = h.sessions.Deactivate(session.ID)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	cookie.SetSessionCookie(c, h.cfg.Cookie, token, h.jwtService.TokenDuration())

	widget, err := resdto.FromSnapshot(session.Flow.Snapshot())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.ActivateResponse{
		Token:      token,
		Restaurant: resdto.FromRestaurant(session.Restaurant),
		Widget:     widget,
	})
}

// @Summary Get widget state
// @Tags widget
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.WidgetResponse
// @Failure 401 {object} httperr.Response
// @Router /widget/session [get]
func (h *WidgetHandler) GetSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, session.Flow)
}

// @Summary Close widget session
// @Tags widget
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} httperr.Response
// @Router /widget/session [delete]
func (h *WidgetHandler) CloseSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.sessions.Deactivate(session.ID); err != nil {
		slog.Warn("Widget session already gone", "session_id", session.ID.String())
	}
	cookie.ClearSessionCookie(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Select party size
// @Description Changing the party size clears the time selection and reloads availability
// @Tags widget
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PartySizeRequest true "Party size"
// @Success 200 {object} resdto.WidgetResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /widget/session/party-size [put]
func (h *WidgetHandler) SetPartySize(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.PartySizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	if err := session.Flow.SetPartySize(c.Request.Context(), req.PartySize); err != nil {
		h.abortFlowError(c, session.Flow, err)
		return
	}
	h.respond(c, http.StatusOK, session.Flow)
}

// @Summary Select date
// @Description A past date is replaced with today; dates far ahead only raise a warning
// @Tags widget
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DateRequest true "Date in YYYY-MM-DD"
// @Success 200 {object} resdto.WidgetResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /widget/session/date [put]
func (h *WidgetHandler) SetDate(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.DateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	if err := session.Flow.SetDate(c.Request.Context(), req.Date); err != nil {
		h.abortFlowError(c, session.Flow, err)
		return
	}
	h.respond(c, http.StatusOK, session.Flow)
}

// @Summary Select time
// @Tags widget
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.TimeRequest true "Offered time slot"
// @Success 200 {object} resdto.WidgetResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /widget/session/time [put]
func (h *WidgetHandler) SelectTime(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.TimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	if err := session.Flow.SelectTime(reservation.SlotID(req.Time)); err != nil {
		h.abortFlowError(c, session.Flow, err)
		return
	}
	h.respond(c, http.StatusOK, session.Flow)
}

// @Summary Update contact details
// @Tags widget
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ContactRequest true "Contact details"
// @Success 200 {object} resdto.WidgetResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /widget/session/contact [put]
func (h *WidgetHandler) UpdateContact(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	draft := session.Flow.Snapshot().Draft
	patch.Apply(&draft.Name, req.Name)
	patch.Apply(&draft.Phone, req.Phone)
	patch.Apply(&draft.Email, req.Email)
	if err := session.Flow.UpdateContact(c.Request.Context(), draft.Name, draft.Phone, draft.Email); err != nil {
		h.abortFlowError(c, session.Flow, err)
		return
	}
	h.respond(c, http.StatusOK, session.Flow)
}

// @Summary Submit draft for review
// @Description Validates every field and moves the widget to the confirmation view
// @Tags widget
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.WidgetResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response{detail=resdto.SubmitRejection}
// @Router /widget/session/submit [post]
func (h *WidgetHandler) Submit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	res, err := session.Flow.Submit()
	if err != nil {
		if errs.Is(err, errs.ErrValidationFailed) {
			widget, convErr := resdto.FromSnapshot(session.Flow.Snapshot())
			if convErr != nil {
				httperr.AbortWithError(c, http.StatusInternalServerError, convErr, "Internal server error", nil)
				return
			}
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation details are invalid",
				resdto.SubmitRejection{Errors: res.Errors, Widget: widget})
			return
		}
		h.abortFlowError(c, session.Flow, err)
		return
	}
	h.respond(c, http.StatusOK, session.Flow)
}

// @Summary Return to the form
// @Description Leaves the confirmation view and reloads availability
// @Tags widget
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.WidgetResponse
// @Failure 409 {object} httperr.Response
// @Router /widget/session/cancel [post]
func (h *WidgetHandler) Cancel(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Flow.Cancel(); err != nil {
		h.abortFlowError(c, session.Flow, err)
		return
	}
	if err := session.Flow.RefreshTimes(c.Request.Context()); err != nil {
		h.abortFlowError(c, session.Flow, err)
		return
	}
	h.respond(c, http.StatusOK, session.Flow)
}

// @Summary Confirm reservation
// @Tags widget
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.WidgetResponse
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response{detail=resdto.WidgetResponse}
// @Router /widget/session/confirm [post]
func (h *WidgetHandler) Confirm(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Flow.Confirm(c.Request.Context()); err != nil {
		h.abortFlowError(c, session.Flow, err)
		return
	}
	h.respond(c, http.StatusOK, session.Flow)
}

// @Summary Dismiss alerts for a field
// @Tags widget
// @Produce json
// @Security BearerAuth
// @Param field path string true "time, date, name, phone, partySize or form"
// @Success 200 {object} resdto.WidgetResponse
// @Failure 400 {object} httperr.Response
// @Router /widget/session/alerts/{field} [delete]
func (h *WidgetHandler) DismissAlerts(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	field := reservation.Field(c.Param("field"))
	if !field.IsValid() {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Newf("unknown field %q", field), "Unknown alert field", nil)
		return
	}
	session.Flow.DismissAlerts(field)
	h.respond(c, http.StatusOK, session.Flow)
}

func (h *WidgetHandler) session(c *gin.Context) (*usecase.WidgetSession, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.ErrSessionNotFound, "Internal server error", nil)
		return nil, false
	}
	return session, true
}

func (h *WidgetHandler) respond(c *gin.Context, status int, flow *usecase.ReservationFlow) {
	widget, err := resdto.FromSnapshot(flow.Snapshot())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, widget)
}

func (h *WidgetHandler) abortFlowError(c *gin.Context, flow *usecase.ReservationFlow, err error) {
	widget, convErr := resdto.FromSnapshot(flow.Snapshot())
	if convErr != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, convErr, "Internal server error", nil)
		return
	}
	switch {
	case errs.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Action is not available in the current step", widget)
	case errs.Is(err, errs.ErrUnknownSlot):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, reservation.MsgTimeInvalid, widget)
	case errs.Is(err, errs.ErrValidationFailed):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation details are invalid", widget)
	case errs.Is(err, errs.ErrBookingRejected):
		httperr.AbortWithError(c, http.StatusBadGateway, err, reservation.MsgBookingFailed, widget)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
