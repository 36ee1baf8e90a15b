package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BinLe1988/tweet-content-filter/api"
	"github.com/BinLe1988/tweet-content-filter/database"
	"github.com/BinLe1988/tweet-content-filter/pkg/filter"
	"github.com/BinLe1988/tweet-content-filter/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand 启动 HTTP 服务
func NewServeCommand(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动推文过滤 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer zap.L().Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// 初始化决策日志数据库
			if err := database.Initialize(cfg.Database); err != nil {
				return err
			}
			defer database.Close()

			var opts []filter.Option
			var decisions api.DecisionLister
			if database.DB != nil {
				store := database.NewDecisionStore(database.DB)
				opts = append(opts, filter.WithRecorder(store))
				decisions = store
			}
			if cfg.Metrics.Enabled {
				opts = append(opts, filter.WithRecorder(filter.MetricsRecorder{}))
			}

			// 决策缓存与监控
			cache := filter.NewDecisionCache(cfg.Filter.CacheSize, cfg.Filter.CacheTTL)
			if cache != nil {
				opts = append(opts, filter.WithCache(cache))
				monitor := filter.NewCacheMonitor(cache, filter.MonitorConfig{Interval: cfg.Filter.MonitorInterval})
				monitor.Start()
				defer monitor.Stop()
			}

			service, err := buildService(cfg, opts...)
			if err != nil {
				return err
			}

			// 初始化JWT
			utils.InitJWT(cfg.Auth)

			gin.SetMode(cfg.Server.Mode)
			router := gin.New()
			api.SetupRouter(router, api.NewContentFilterHandler(service, decisions), api.RouterOptions{
				Auth:    cfg.Auth,
				Metrics: cfg.Metrics.Enabled,
				Logger:  zap.L(),
			})

			srv := &http.Server{
				Addr:              ":" + cfg.Server.Port,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				zap.S().Infof("Server starting on port %s", cfg.Server.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			zap.S().Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
