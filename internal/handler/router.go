package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"voucher-engine/internal/handler/api"
	"voucher-engine/internal/handler/middleware"
	"voucher-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, voucherHandler *api.VoucherHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, voucherHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, voucherHandler *api.VoucherHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		vouchers := apiGroup.Group("/vouchers")
		vouchers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(vouchers, []route{
				{Method: http.MethodPost, Path: "/validate", Handler: voucherHandler.Validate},
				{Method: http.MethodPost, Path: "/apply", Handler: voucherHandler.Apply},
				{Method: http.MethodGet, Path: "/mine", Handler: voucherHandler.ListMine},
			})

			admin := []gin.HandlerFunc{authMiddleware.RequireAdmin()}
			addRoutes(vouchers, []route{
				{Method: http.MethodPost, Path: "/:id/assignments", Handler: voucherHandler.Assign, Mw: admin},
				{Method: http.MethodDelete, Path: "/:id/assignments/:customer_id", Handler: voucherHandler.Revoke, Mw: admin},
				{Method: http.MethodPost, Path: "/:id/pause", Handler: voucherHandler.Pause, Mw: admin},
				{Method: http.MethodPost, Path: "/:id/resume", Handler: voucherHandler.Resume, Mw: admin},
				{Method: http.MethodPost, Path: "/lifecycle/activate", Handler: voucherHandler.ActivateScheduled, Mw: admin},
				{Method: http.MethodPost, Path: "/lifecycle/expire", Handler: voucherHandler.ExpireOverdue, Mw: admin},
			})
		}
	}
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
