package main

import (
	"errors"

	"github.com/BinLe1988/tweet-content-filter/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMigrateCommand 创建决策日志表
func NewMigrateCommand(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "迁移决策日志数据库",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			if db == nil {
				return errors.New("database.driver is not configured")
			}
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			}()

			if err := database.Migrate(db); err != nil {
				return err
			}

			// 显示统计信息
			counts, err := database.NewDecisionStore(db).CountByOutcome(cmd.Context())
			if err != nil {
				zap.S().Warnf("获取统计信息失败:%s", err.Error())
				return nil
			}
			zap.S().Infof("决策日志迁移完成: %v", counts)
			return nil
		},
	}
}
