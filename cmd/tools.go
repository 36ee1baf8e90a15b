package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BinLe1988/tweet-content-filter/pkg/filter"
	"github.com/BinLe1988/tweet-content-filter/pkg/utils"

	"github.com/spf13/cobra"
)

// NewPreprocessCommand 输出预处理后的文本
func NewPreprocessCommand(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "preprocess [text]",
		Short: "对文本做分词和短语合并",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tokenizer, err := buildTokenizer(cfg)
			if err != nil {
				return err
			}
			processed, err := filter.PreprocessText(cfg.Artifacts.PhraseModel, strings.Join(args, " "), tokenizer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), processed)
			return nil
		},
	}
}

// NewClassifyCommand 对文本运行完整的过滤流水线
func NewClassifyCommand(loadConfig configLoader) *cobra.Command {
	var threshold float64
	var filterWords []string
	var includeSynonyms bool

	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "对文本运行过滤流水线并输出决策",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if threshold < 0 || threshold > 1 {
				return fmt.Errorf("threshold must be within [0,1], got %v", threshold)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			service, err := buildService(cfg)
			if err != nil {
				return err
			}

			req := filter.Request{
				Body:            strings.Join(args, " "),
				FilterWords:     filterWords,
				IncludeSynonyms: &includeSynonyms,
			}
			if cmd.Flags().Changed("threshold") {
				req.Threshold = &threshold
			}
			decision, err := service.Filter(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(decision)
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", filter.DefaultThreshold, "过滤阈值")
	cmd.Flags().StringSliceVarP(&filterWords, "filter-words", "w", nil, "屏蔽词列表")
	cmd.Flags().BoolVarP(&includeSynonyms, "include-synonyms", "s", true, "屏蔽词是否扩展同义词")
	return cmd
}

// NewTokenCommand 为客户端签发令牌
func NewTokenCommand(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "token [client_id]",
		Short: "为客户端签发 JWT 令牌",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			utils.InitJWT(cfg.Auth)
			token, err := utils.GenerateToken(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

// NewHashSecretCommand 生成客户端密钥的 bcrypt 哈希，用于 auth.clients
func NewHashSecretCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret [secret]",
		Short: "生成客户端密钥哈希",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashSecret(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
