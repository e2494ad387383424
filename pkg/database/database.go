package database

import (
	"fmt"
	"log"

	"kidsphere_backend/internal/config"
	"kidsphere_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate runs AutoMigrate for every table and seeds static rows. It is
// shared with the test harness, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Child{},
		&model.News{},
		&model.Debate{},
		&model.DebateMessage{},
		&model.Folder{},
		&model.FolderItem{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizOption{},
		&model.QuizSequence{},
		&model.QuizProgress{},
		&model.KnowledgeSet{},
		&model.KnowledgeQuestion{},
		&model.KnowledgeOption{},
		&model.KnowledgeProgress{},
		&model.UserTask{},
		&model.Test{},
		&model.TestQuestion{},
		&model.TestOption{},
		&model.TestProgress{},
		&model.UserTest{},
		&model.StarPercent{},
		&model.Subject{},
		&model.SubjectQuestion{},
		&model.SubjectProgress{},
		&model.SubjectCompletion{},
		&model.CareerTest{},
		&model.CareerQuestion{},
		&model.CareerProgress{},
		&model.CareerResult{},
		&model.Badge{},
		&model.Challenge{},
		&model.ChallengeProgress{},
		&model.PlanPrice{},
		&model.PaymentOrder{},
	)
	if err != nil {
		return err
	}

	seedStarThresholds(db)
	seedBadges(db)
	seedPlanPrices(db)

	return nil
}

// Default star thresholds: highest min_percentage at or below the
// computed percentage wins.
func seedStarThresholds(db *gorm.DB) {
	var count int64
	db.Model(&model.StarPercent{}).Count(&count)
	if count > 0 {
		return
	}

	thresholds := []model.StarPercent{
		{MinPercentage: 0, Stars: 0},
		{MinPercentage: 20, Stars: 1},
		{MinPercentage: 40, Stars: 2},
		{MinPercentage: 60, Stars: 3},
		{MinPercentage: 80, Stars: 4},
		{MinPercentage: 95, Stars: 5},
	}
	for _, t := range thresholds {
		db.Create(&t)
	}
}

func seedBadges(db *gorm.DB) {
	var count int64
	db.Model(&model.Badge{}).Count(&count)
	if count > 0 {
		return
	}

	badges := []model.Badge{
		{Code: "news_hound", Name: "News Hound", Description: "Read news from every viewpoint for a whole week"},
		{Code: "quiz_whiz", Name: "Quiz Whiz", Description: "Finish five learning quizzes"},
		{Code: "debate_star", Name: "Debate Star", Description: "Complete three AI debates"},
		{Code: "deep_diver", Name: "Deep Diver", Description: "Finish a knowledge set with a perfect score"},
	}
	for _, b := range badges {
		db.Create(&b)
	}
}

func seedPlanPrices(db *gorm.DB) {
	var count int64
	db.Model(&model.PlanPrice{}).Count(&count)
	if count > 0 {
		return
	}

	prices := []model.PlanPrice{
		{Plan: model.PlanFree, Amount: 0, Currency: "INR"},
		{Plan: model.PlanPremium, Amount: 29900, Currency: "INR"},
	}
	for _, p := range prices {
		db.Create(&p)
	}
}
