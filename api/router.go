package api

import (
	"net/http"

	"github.com/BinLe1988/tweet-content-filter/api/handlers"
	"github.com/BinLe1988/tweet-content-filter/api/middleware"
	"github.com/BinLe1988/tweet-content-filter/configs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterOptions 路由配置
type RouterOptions struct {
	Auth    configs.Auth
	Metrics bool
	Logger  *zap.Logger
}

// SetupRouter 设置API路由
func SetupRouter(router *gin.Engine, filterHandler *ContentFilterHandler, opts RouterOptions) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}

	router.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger))

	// 允许所有来源跨域访问
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.ExposeHeaders = []string{OutcomeHeader, middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// 公共API
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// 需要认证的API
	filterRoutes := router.Group("/")
	if opts.Auth.Enabled {
		authHandler := handlers.NewAuthHandler(opts.Auth.Clients)
		router.POST("/auth/token", authHandler.IssueToken)
		filterRoutes.Use(middleware.Auth())
	}
	filterHandler.RegisterRoutes(filterRoutes)
}
