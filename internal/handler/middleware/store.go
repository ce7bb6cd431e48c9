package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"cancel-saga/internal/handler/httperr"
	"cancel-saga/internal/pkg/storeconfig"

	"github.com/gin-gonic/gin"
)

const ctxStoreKey = "store_alias"

type StoreResolver interface {
	ByOrigin(origin string) (storeconfig.Store, error)
}

// RequireStore selects the tenant from the Origin header of a storefront request.
func RequireStore(stores StoreResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, errors.New("missing origin"), "Origin header required")
			return
		}
		s, err := stores.ByOrigin(origin)
		if err != nil {
			slog.Warn("request from unknown origin", "origin", origin)
			httperr.AbortWithError(c, http.StatusForbidden, err, "Unknown store")
			return
		}
		SetStore(c, s.Alias)
		c.Next()
	}
}

func SetStore(c *gin.Context, alias string) {
	c.Set(ctxStoreKey, alias)
}

func GetStore(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxStoreKey)
	if !ok {
		return "", false
	}
	alias, ok := v.(string)
	return alias, ok && alias != ""
}
