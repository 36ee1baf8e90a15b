package configs

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin 模式: debug / release / test
}

type Artifacts struct {
	PhraseModel    string `mapstructure:"phrase_model"`
	SentimentModel string `mapstructure:"sentiment_model"`
	Thesaurus      string `mapstructure:"thesaurus"`
}

type Text struct {
	Stemmer string `mapstructure:"stemmer"`
}

type Language struct {
	Languages []string `mapstructure:"languages"`
}

type Filter struct {
	DefaultThreshold float64       `mapstructure:"default_threshold"`
	CacheSize        int           `mapstructure:"cache_size"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
	MonitorInterval  time.Duration `mapstructure:"monitor_interval"`
}

// Database 决策日志数据库，Driver 为空时不记录
type Database struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Path     string `mapstructure:"path"` // sqlite 文件路径
}

type Auth struct {
	Enabled   bool              `mapstructure:"enabled"`
	Secret    string            `mapstructure:"secret"`
	ExpiresIn int               `mapstructure:"expires_in"` // 过期时间（小时）
	Clients   map[string]string `mapstructure:"clients"`    // client_id -> bcrypt hash
}

type Metrics struct {
	Enabled bool `mapstructure:"enabled"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server    Server    `mapstructure:"server"`
	Artifacts Artifacts `mapstructure:"artifacts"`
	Text      Text      `mapstructure:"text"`
	Language  Language  `mapstructure:"language"`
	Filter    Filter    `mapstructure:"filter"`
	Database  Database  `mapstructure:"database"`
	Auth      Auth      `mapstructure:"auth"`
	Metrics   Metrics   `mapstructure:"metrics"`
	Log       Log       `mapstructure:"log"`
}

// setDefaults 设置默认配置
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("artifacts.phrase_model", "resources/phrasemodel.json")
	v.SetDefault("artifacts.sentiment_model", "resources/sentiment_model.json")
	v.SetDefault("artifacts.thesaurus", "resources/thesaurus.json")
	v.SetDefault("text.stemmer", "porter")
	v.SetDefault("language.languages", []string{"en", "es", "fr", "de", "it", "pt", "nl", "pl"})
	v.SetDefault("filter.default_threshold", 0.5)
	v.SetDefault("filter.cache_size", 10000)
	v.SetDefault("filter.cache_ttl", "10m")
	v.SetDefault("filter.monitor_interval", "1m")
	v.SetDefault("auth.expires_in", 24)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load 加载配置，path 为空时在默认目录中查找 config.yaml；找不到配置文件时使用默认值
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(path), "."))
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TCF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config: %v", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}
	return &config, nil
}

// Validate 校验配置
func (c *Config) Validate() []error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, fmt.Errorf("server.port is required"))
	}
	if c.Filter.DefaultThreshold < 0 || c.Filter.DefaultThreshold > 1 {
		errs = append(errs, fmt.Errorf("filter.default_threshold must be within [0,1], got %v", c.Filter.DefaultThreshold))
	}
	if c.Filter.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("filter.cache_size must not be negative"))
	}
	if c.Artifacts.PhraseModel == "" || c.Artifacts.SentimentModel == "" || c.Artifacts.Thesaurus == "" {
		errs = append(errs, fmt.Errorf("artifacts.phrase_model, artifacts.sentiment_model and artifacts.thesaurus are required"))
	}
	switch c.Database.Driver {
	case "", "sqlite", "mysql", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver: %s", c.Database.Driver))
	}
	if c.Auth.Enabled {
		if c.Auth.Secret == "" {
			errs = append(errs, fmt.Errorf("auth.secret is required when auth is enabled"))
		}
		if len(c.Auth.Clients) == 0 {
			errs = append(errs, fmt.Errorf("auth.clients must list at least one client when auth is enabled"))
		}
	}
	return errs
}
