package database

import (
	"fmt"
	"habit_coach_backend/internal/config"
	"habit_coach_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BuildDSN 拼接 MySQL 连接串。打卡日期全部锚定 UTC 零点，
// 连接时区必须固定为 UTC：驱动会把 time.Time 参数换算到连接时区
// 再写入，loc=Local 在 UTC 以西的主机上会把 DATE 挪前一天
func BuildDSN(dbCfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := BuildDSN(&cfg.Database)

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认不自动迁移，需显式传 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Habit{},
			&model.CheckIn{},
			&model.CheckInItem{},
			&model.AchievementDefinition{},
			&model.AchievementEvent{},
			&model.Admin{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	return db, nil
}
