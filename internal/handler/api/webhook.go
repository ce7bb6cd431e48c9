package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	reqdto "cancel-saga/internal/handler/dto/request"
	resdto "cancel-saga/internal/handler/dto/response"
	"cancel-saga/internal/handler/httperr"
	"cancel-saga/internal/handler/middleware"
	"cancel-saga/internal/pkg/storeconfig"
	"cancel-saga/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

var errShopMismatch = errors.New("webhook shop does not match its alias")

type StoreLookup interface {
	ByAlias(alias string) (storeconfig.Store, error)
}

type WebhookHandler struct {
	cmds   commands.CancellationCommands
	stores StoreLookup
}

func NewWebhookHandler(cmds commands.CancellationCommands, stores StoreLookup) *WebhookHandler {
	return &WebhookHandler{cmds: cmds, stores: stores}
}

// @Summary Draft order paid
// @Description Completion trigger sent when a compensation invoice has been paid
// @Tags webhook
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PaidWebhookRequest true "Paid notification"
// @Success 200 {object} resdto.CompletionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /webhook/paid [post]
func (h *WebhookHandler) Paid(c *gin.Context) {
	var req reqdto.PaidWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request")
		return
	}

	subject, _ := middleware.GetWebhookSubject(c)
	if subject != req.ShopAlias {
		httperr.AbortWithError(c, http.StatusForbidden, errShopMismatch, "Token is not valid for this shop")
		return
	}
	store, err := h.stores.ByAlias(req.ShopAlias)
	if err != nil {
		httperr.AbortWithError(c, http.StatusForbidden, err, "Unknown store")
		return
	}
	if !strings.EqualFold(strings.TrimSpace(req.Shop), store.Commerce.Domain) {
		slog.Warn("webhook shop mismatch", "alias", req.ShopAlias, "shop", req.Shop)
		httperr.AbortWithError(c, http.StatusForbidden, errShopMismatch, "Shop does not match alias")
		return
	}
	middleware.SetStore(c, store.Alias)

	result, err := h.cmds.Complete(c.Request.Context(), store.Alias, req.DraftOrder)
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			slog.Error("completion failed", "store", store.Alias, "draft_order", req.DraftOrder, "error", err)
		}
		httperr.AbortWithError(c, status, err, msg)
		return
	}

	resp, err := resdto.FromCompleteResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}
