package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cancel-saga/internal/handler/httperr"
	"cancel-saga/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxWebhookSubjectKey = "webhook_subject"

type WebhookTokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type WebhookAuthMiddleware struct {
	validator WebhookTokenValidator
}

func NewWebhookAuthMiddleware(validator WebhookTokenValidator) *WebhookAuthMiddleware {
	return &WebhookAuthMiddleware{validator: validator}
}

// RequireScope accepts a bearer token carrying the given scope and records its subject (a shop alias).
func (m *WebhookAuthMiddleware) RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing bearer token"), "Access token required")
			return
		}

		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			slog.Warn("webhook token validation failed", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}
		if claims.Scope != scope {
			httperr.AbortWithError(c, http.StatusForbidden, errors.New("scope mismatch"), "Insufficient permissions")
			return
		}

		c.Set(ctxWebhookSubjectKey, claims.Subject)
		c.Next()
	}
}

// GetWebhookSubject returns the shop alias the authenticated sender may act for.
func GetWebhookSubject(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxWebhookSubjectKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("Bearer "):])
}
