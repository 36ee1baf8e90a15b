package main

import (
	"errors"

	"github.com/BinLe1988/tweet-content-filter/configs"
	"github.com/BinLe1988/tweet-content-filter/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version 由 -ldflags "-X main.version=..." 注入
var version = "dev"

// NewRootCommand 创建根命令
func NewRootCommand() *cobra.Command {
	var configFilePath string

	rootCmd := &cobra.Command{
		Use:           "tweet-content-filter",
		Short:         "推文内容过滤服务",
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableNoDescFlag:   true,
			DisableDescriptions: true,
			HiddenDefaultCmd:    true,
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "", "配置文件路径，默认在 ./configs 和 . 中查找 config.yaml")

	loadConfig := func() (*configs.Config, error) {
		cfg, err := configs.Load(configFilePath)
		if err != nil {
			return nil, err
		}
		if errs := cfg.Validate(); len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		if _, err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	rootCmd.AddCommand(
		NewServeCommand(loadConfig),
		NewPreprocessCommand(loadConfig),
		NewClassifyCommand(loadConfig),
		NewMigrateCommand(loadConfig),
		NewTokenCommand(loadConfig),
		NewHashSecretCommand(),
	)

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		zap.S().Info("使用 'serve' 子命令启动服务")
		cmd.Help()
	}
	rootCmd.Version = version
	return rootCmd
}

type configLoader func() (*configs.Config, error)
