//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"cancel-saga/internal/pkg/config"
	"cancel-saga/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.WebhookConfig
}

func NewJWTHelper(cfg config.WebhookConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// WebhookToken signs a paid-webhook token for the given shop alias.
func (h *JWTHelper) WebhookToken(t *testing.T, shopAlias string) string {
	t.Helper()
	return h.Token(t, shopAlias, jwt.ScopeWebhookPaid, time.Minute)
}

func (h *JWTHelper) Token(t *testing.T, shopAlias, scope string, ttl time.Duration) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Issuer).GenerateToken(shopAlias, scope, ttl)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) ExpiredToken(t *testing.T, shopAlias string) string {
	t.Helper()
	return h.Token(t, shopAlias, jwt.ScopeWebhookPaid, -time.Minute)
}
