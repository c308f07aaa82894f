package router

import (
	"github.com/gin-gonic/gin"
	thirdPartyI18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"quicklink-go/internal/handler"
	"quicklink-go/internal/middleware"
)

// Router 注册中间件和路由；短链跳转挂在 NoRoute 上，避免和 /api 冲突
func Router(log *zap.Logger, bundle *thirdPartyI18n.Bundle, corsOrigin string, h *handler.ShortLinkHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.GlobalErrorMiddleware(log))
	r.Use(middleware.ZapGinLogger(log))
	r.Use(middleware.CorsMiddleware(corsOrigin))
	r.Use(middleware.I18nMiddleware(bundle))

	api := r.Group("/api")
	{
		api.POST("/shorten", h.Shorten)
		api.GET("/stats/:shortCode", h.Stats)
		api.GET("/health", h.Health)
	}

	r.NoRoute(h.Redirect)
	return r
}
