package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CareerRepository struct {
	DB *gorm.DB
}

func NewCareerRepository(db *gorm.DB) *CareerRepository {
	return &CareerRepository{DB: db}
}

func (r *CareerRepository) CreateTest(test *model.CareerTest) error {
	return r.DB.Create(test).Error
}

func (r *CareerRepository) FindTestByID(id uint) (*model.CareerTest, error) {
	var t model.CareerTest
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("career_questions.`order` asc, career_questions.id asc")
	}).First(&t, id).Error
	return &t, err
}

func (r *CareerRepository) ListTests(language string, page, limit int) ([]model.CareerTest, int64, error) {
	var tests []model.CareerTest
	var total int64

	query := r.DB.Model(&model.CareerTest{})
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

func (r *CareerRepository) FindQuestion(questionID uint) (*model.CareerQuestion, error) {
	var q model.CareerQuestion
	err := r.DB.First(&q, questionID).Error
	return &q, err
}

func (r *CareerRepository) CountQuestions(testID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CareerQuestion{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}

func (r *CareerRepository) InsertProgress(p *model.CareerProgress) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CareerRepository) ListProgress(userID, childID, testID uint) ([]model.CareerProgress, error) {
	var rows []model.CareerProgress
	err := r.DB.Where("user_id = ? AND child_id = ? AND test_id = ?", userID, childID, testID).
		Find(&rows).Error
	return rows, err
}

func (r *CareerRepository) FindResult(userID, testID uint) (*model.CareerResult, error) {
	var res model.CareerResult
	err := r.DB.Where("user_id = ? AND test_id = ?", userID, testID).First(&res).Error
	return &res, err
}

func (r *CareerRepository) SaveResult(result *model.CareerResult) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "test_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "language"}),
	}).Create(result).Error
}
