package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(id uint) (*model.Test, error) {
	var t model.Test
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("test_questions.`order` asc, test_questions.id asc")
	}).Preload("Questions.Options").First(&t, id).Error
	return &t, err
}

func (r *TestRepository) List(language string, page, limit int) ([]model.Test, int64, error) {
	var tests []model.Test
	var total int64

	query := r.DB.Model(&model.Test{})
	if language != "" {
		query = query.Where("language = ?", language)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&tests).Error
	return tests, total, err
}

func (r *TestRepository) FindQuestion(questionID uint) (*model.TestQuestion, error) {
	var q model.TestQuestion
	err := r.DB.First(&q, questionID).Error
	return &q, err
}

func (r *TestRepository) FindOption(optionID uint) (*model.TestOption, error) {
	var o model.TestOption
	err := r.DB.First(&o, optionID).Error
	return &o, err
}

func (r *TestRepository) CountQuestions(testID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestQuestion{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}

func (r *TestRepository) InsertProgress(p *model.TestProgress) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SumMarks totals the marks a user has earned across a test.
func (r *TestRepository) SumMarks(userID, testID uint) (int, error) {
	var total int
	err := r.DB.Model(&model.TestProgress{}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Select("COALESCE(SUM(marks), 0)").
		Scan(&total).Error
	return total, err
}

func (r *TestRepository) CountProgress(userID, testID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestProgress{}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Count(&count).Error
	return count, err
}

// EnsureUserTest creates the lazy completion record on first contact.
func (r *TestRepository) EnsureUserTest(ut *model.UserTest) (*model.UserTest, error) {
	if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(ut).Error; err != nil {
		return nil, err
	}

	var existing model.UserTest
	err := r.DB.Where("user_id = ? AND test_id = ?", ut.UserID, ut.TestID).First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *TestRepository) FinalizeUserTest(id uint, score int, percentage float64, stars int) error {
	return r.DB.Model(&model.UserTest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"score":      score,
			"percentage": percentage,
			"stars":      stars,
			"completed":  "yes",
		}).Error
}

func (r *TestRepository) FindUserTest(userID, testID uint) (*model.UserTest, error) {
	var ut model.UserTest
	err := r.DB.Where("user_id = ? AND test_id = ?", userID, testID).First(&ut).Error
	return &ut, err
}

// StarThresholds returns the reward table ordered descending so the
// first row at or below a percentage is the winner.
func (r *TestRepository) StarThresholds() ([]model.StarPercent, error) {
	var rows []model.StarPercent
	err := r.DB.Order("min_percentage desc").Find(&rows).Error
	return rows, err
}
