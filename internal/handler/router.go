package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cancel-saga/internal/handler/api"
	reqdto "cancel-saga/internal/handler/dto/request"
	"cancel-saga/internal/handler/httperr"
	"cancel-saga/internal/handler/middleware"
	"cancel-saga/internal/pkg/config"
	"cancel-saga/internal/pkg/jwt"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type StoreRegistry interface {
	middleware.StoreResolver
	api.StoreLookup
	Origins() []string
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	stores StoreRegistry,
	cancellationHandler *api.CancellationHandler,
	webhookHandler *api.WebhookHandler,
	webhookAuth *middleware.WebhookAuthMiddleware,
) error {
	if err := reqdto.RegisterValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, stores)
	setupRoutes(engine, stores, cancellationHandler, webhookHandler, webhookAuth)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, stores StoreRegistry) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, stores.Origins()))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(httperr.UseLegacyStatus(cfg.Server.LegacyErrorStatus))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	stores StoreRegistry,
	cancellationHandler *api.CancellationHandler,
	webhookHandler *api.WebhookHandler,
	webhookAuth *middleware.WebhookAuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	storefront := engine.Group("")
	storefront.Use(middleware.RequireStore(stores))
	addRoutes(storefront, []route{
		{Method: http.MethodPost, Path: "/subscription/cancel", Handler: cancellationHandler.Cancel},
		{Method: http.MethodPost, Path: "/token/subscription/validate", Handler: cancellationHandler.ValidateToken},
	})

	webhooks := engine.Group("/webhook")
	addRoutes(webhooks, []route{
		{
			Method:  http.MethodPost,
			Path:    "/paid",
			Handler: webhookHandler.Paid,
			Mw:      []gin.HandlerFunc{webhookAuth.RequireScope(jwt.ScopeWebhookPaid)},
		},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
