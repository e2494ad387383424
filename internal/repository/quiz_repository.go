package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.`order` asc, quiz_questions.id asc")
	}).Preload("Questions.Options").First(&q, id).Error
	return &q, err
}

func (r *QuizRepository) List(category, language string, page, limit int) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64

	query := r.DB.Model(&model.Quiz{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if language != "" {
		query = query.Where("language = ?", language)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&quizzes).Error
	return quizzes, total, err
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Quiz{}, id).Error
}

func (r *QuizRepository) FindQuestion(questionID uint) (*model.QuizQuestion, error) {
	var q model.QuizQuestion
	err := r.DB.First(&q, questionID).Error
	return &q, err
}

func (r *QuizRepository) FindOption(optionID uint) (*model.QuizOption, error) {
	var o model.QuizOption
	err := r.DB.First(&o, optionID).Error
	return &o, err
}

func (r *QuizRepository) CountQuestions(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

// EnsureSequence inserts the started row if absent and returns the row
// either way. INSERT ... ON CONFLICT DO NOTHING against the composite
// unique index, so two concurrent first answers cannot double-insert.
func (r *QuizRepository) EnsureSequence(seq *model.QuizSequence) (*model.QuizSequence, error) {
	seq.IsStarted = true
	if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(seq).Error; err != nil {
		return nil, err
	}

	existing, err := r.FindSequence(seq.UserID, seq.ChildID, seq.QuizType, seq.QuizID)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *QuizRepository) FindSequence(userID, childID uint, quizType model.QuizType, quizID uint) (*model.QuizSequence, error) {
	var seq model.QuizSequence
	err := r.DB.Where(
		"user_id = ? AND child_id = ? AND quiz_type = ? AND quiz_id = ?",
		userID, childID, quizType, quizID,
	).First(&seq).Error
	return &seq, err
}

func (r *QuizRepository) CompleteSequence(id uint, typeSequence string) error {
	return r.DB.Model(&model.QuizSequence{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_completed":  true,
			"type_sequence": typeSequence,
		}).Error
}

// InsertProgress records one answer. Returns false when the question
// was already answered for this child (unique index hit).
func (r *QuizRepository) InsertProgress(p *model.QuizProgress) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *QuizRepository) ListProgress(childID, quizID uint) ([]model.QuizProgress, error) {
	var rows []model.QuizProgress
	err := r.DB.Where("child_id = ? AND quiz_id = ?", childID, quizID).Find(&rows).Error
	return rows, err
}

func (r *QuizRepository) CountCorrect(childID, quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizProgress{}).
		Where("child_id = ? AND quiz_id = ? AND is_correct = ?", childID, quizID, true).
		Count(&count).Error
	return count, err
}
