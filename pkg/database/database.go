package database

import (
	"fmt"
	"log"
	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过自动迁移，除非显式要求
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.ModelTest{},
		&model.ModelTestQuestion{},
		&model.TestAttempt{},
		&model.TestAttemptAnswer{},
		&model.Note{},
		&model.Question{},
		&model.Answer{},
		&model.Task{},
		&model.StudySession{},
		&model.Contest{},
		&model.ContestParticipant{},
		&model.Notification{},
		&model.Vote{},
		&model.SavedItem{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
