package service

import (
	"os"
	"testing"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/pkg/database"
	"kidsphere_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(repository.NewUserRepository(db), repository.NewChildRepository(db))
}

func seedUserWithChild(t *testing.T, db *gorm.DB, dob time.Time) (*model.User, *model.Child) {
	t.Helper()
	user := &model.User{
		Name:     "Pat",
		Email:    "pat@example.com",
		Password: "x",
		Role:     model.Member,
		Plan:     model.PlanFree,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	child := &model.Child{UserID: user.ID, Name: "Sam", DOB: dob}
	if err := db.Create(child).Error; err != nil {
		t.Fatalf("seed child: %v", err)
	}
	return user, child
}
