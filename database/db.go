package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BinLe1988/tweet-content-filter/configs"
	"github.com/BinLe1988/tweet-content-filter/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open 按配置打开数据库连接，Driver 为空时返回 nil
func Open(dbConfig configs.Database) (*gorm.DB, error) {
	var dsn string
	var dialector gorm.Dialector

	switch dbConfig.Driver {
	case "":
		return nil, nil
	case "sqlite":
		dsn = dbConfig.Path
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		} else if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %v", err)
			}
		}
		dialector = sqlite.Open(dsn)
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.DBName)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbConfig.Host, dbConfig.Port, dbConfig.User, dbConfig.Password, dbConfig.DBName)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", dbConfig.Driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.FilterDecision{})
}

// Initialize 初始化数据库连接并迁移，未配置数据库时 DB 保持为 nil
func Initialize(dbConfig configs.Database) error {
	db, err := Open(dbConfig)
	if err != nil {
		return err
	}
	if db == nil {
		zap.S().Info("decision log disabled: no database driver configured")
		return nil
	}
	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	zap.S().Infof("Database connected successfully (%s)", dbConfig.Driver)
	return nil
}

// Close 关闭数据库连接
func Close() {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			zap.S().Errorf("Failed to get database connection: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			zap.S().Errorf("Failed to close database connection: %v", err)
		}
		DB = nil
	}
}
