// 演示数据播种脚本
//
// 创建一个演示用户和最近 7 天的连续打卡记录，方便本地联调机器人与管理后台。
// 重复执行是幂等的，已存在的用户和打卡日会被跳过。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"errors"
	"habit_coach_backend/internal/config"
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/util"
	"habit_coach_backend/pkg/database"
	"habit_coach_backend/pkg/logger"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

const demoTgUserID = 990001

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	user := findOrCreateUser(db)
	seedHabits(db, user.ID)
	seedCheckins(db, user.ID)

	log.Println("演示数据播种完成！")
}

func findOrCreateUser(db *gorm.DB) *model.User {
	var user model.User
	err := db.Where("tg_user_id = ?", demoTgUserID).First(&user).Error
	if err == nil {
		log.Printf("演示用户已存在 (id=%d)", user.ID)
		return &user
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("查询演示用户失败: %v", err)
	}

	user = model.User{
		TgUserID:    demoTgUserID,
		DisplayName: "Demo User",
		IsActive:    true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("创建演示用户失败: %v", err)
	}
	log.Printf("创建演示用户 (id=%d)", user.ID)
	return &user
}

func seedHabits(db *gorm.DB, userID uint) {
	habits := []model.Habit{
		{UserID: userID, Key: "morning_run", Title: "晨跑 20 分钟", IsActive: true},
		{UserID: userID, Key: "reading", Title: "阅读 30 分钟", IsActive: true},
	}
	for _, h := range habits {
		var existing model.Habit
		err := db.Where("user_id = ? AND `key` = ?", userID, h.Key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("查询习惯失败: %v", err)
		}
		if err := db.Create(&h).Error; err != nil {
			log.Fatalf("创建习惯失败: %v", err)
		}
	}
}

func seedCheckins(db *gorm.DB, userID uint) {
	today := util.DateOnly(time.Now())

	for offset := 6; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)

		var existing model.CheckIn
		err := db.Where("user_id = ? AND day = ?", userID, day.Format(util.DateFormat)).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("查询打卡记录失败: %v", err)
		}

		checkin := model.CheckIn{
			UserID:         userID,
			Day:            day,
			Slip:           false,
			HealthyMinutes: 30 + offset*5,
			Items: []model.CheckInItem{
				{HabitKey: "morning_run", Done: true},
				{HabitKey: "reading", Done: offset%2 == 0},
			},
		}
		if err := db.Create(&checkin).Error; err != nil {
			log.Fatalf("创建打卡记录失败: %v", err)
		}
		log.Printf("播种打卡: %s", day.Format(util.DateFormat))
	}
}
