package middleware

import (
	"log/slog"

	"cancel-saga/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware allows exactly the storefront origins listed in the store registry.
func NewCORSMiddleware(cfg config.CORSConfig, origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if len(origins) == 0 {
		// cors.New panics on an empty allow-list with AllowAllOrigins unset.
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", origins)
	return cors.New(corsCfg)
}
