package api

import (
	"log/slog"
	"net/http"

	reqdto "cancel-saga/internal/handler/dto/request"
	resdto "cancel-saga/internal/handler/dto/response"
	"cancel-saga/internal/handler/httperr"
	"cancel-saga/internal/handler/middleware"
	"cancel-saga/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CancellationHandler struct {
	cmds commands.CancellationCommands
}

func NewCancellationHandler(cmds commands.CancellationCommands) *CancellationHandler {
	return &CancellationHandler{cmds: cmds}
}

// @Summary Cancel subscription
// @Description Verify the customer's code and cancel, or issue a compensation invoice when the subscription ends early
// @Tags cancellation
// @Accept json
// @Produce json
// @Param Origin header string true "Storefront origin"
// @Param request body reqdto.CancelSubscriptionRequest true "Cancel request"
// @Success 200 {object} resdto.CancellationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /subscription/cancel [post]
func (h *CancellationHandler) Cancel(c *gin.Context) {
	var req reqdto.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request")
		return
	}
	h.run(c, req, "")
}

// @Summary Validate token and cancel subscription
// @Description Same as cancel, with the cancel session supplied by the storefront
// @Tags cancellation
// @Accept json
// @Produce json
// @Param Origin header string true "Storefront origin"
// @Param request body reqdto.ValidateTokenRequest true "Validate request"
// @Success 200 {object} resdto.CancellationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /token/subscription/validate [post]
func (h *CancellationHandler) ValidateToken(c *gin.Context) {
	var req reqdto.ValidateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request")
		return
	}
	h.run(c, req.CancelSubscriptionRequest, req.CancelSessionID)
}

func (h *CancellationHandler) run(c *gin.Context, req reqdto.CancelSubscriptionRequest, sessionRef string) {
	store, ok := middleware.GetStore(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusForbidden, commands.ErrUnknownStore, "Unknown store")
		return
	}

	result, err := h.cmds.Cancel(c.Request.Context(), commands.CancelRequest{
		Store:            store,
		Email:            req.NormalizedEmail(),
		Code:             req.Token,
		SubscriptionRef:  req.Subscription,
		CancelSessionRef: sessionRef,
	})
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			slog.Error("cancellation failed", "store", store, "subscription", req.Subscription, "error", err)
		}
		httperr.AbortWithError(c, status, err, msg)
		return
	}

	resp, err := resdto.FromCancelResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}
