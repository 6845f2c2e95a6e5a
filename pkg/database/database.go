package database

import (
	"fmt"
	"mindcheck_backend/internal/config"
	"mindcheck_backend/internal/model"
	applog "mindcheck_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN 生成 go-sql-driver/mysql 连接串
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

// InitDB 打开连接，migrate 为 true 时执行表结构迁移
func InitDB(cfg *config.DatabaseConfig, migrate bool, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	applog.Log.Info("Database connection established", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Quiz{},
		&model.QuizResult{},
	)
	if err != nil {
		return err
	}
	applog.Log.Info("Database migration completed")
	return nil
}
