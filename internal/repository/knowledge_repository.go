package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeRepository struct {
	DB *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) *KnowledgeRepository {
	return &KnowledgeRepository{DB: db}
}

func (r *KnowledgeRepository) CreateSet(set *model.KnowledgeSet) error {
	return r.DB.Create(set).Error
}

func (r *KnowledgeRepository) FindSetByID(id uint) (*model.KnowledgeSet, error) {
	var s model.KnowledgeSet
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("knowledge_questions.`order` asc, knowledge_questions.id asc")
	}).Preload("Questions.Options").First(&s, id).Error
	return &s, err
}

func (r *KnowledgeRepository) ListSets(language string, page, limit int) ([]model.KnowledgeSet, int64, error) {
	var sets []model.KnowledgeSet
	var total int64

	query := r.DB.Model(&model.KnowledgeSet{})
	if language != "" {
		query = query.Where("language = ?", language)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&sets).Error
	return sets, total, err
}

func (r *KnowledgeRepository) FindQuestion(questionID uint) (*model.KnowledgeQuestion, error) {
	var q model.KnowledgeQuestion
	err := r.DB.First(&q, questionID).Error
	return &q, err
}

func (r *KnowledgeRepository) FindOption(optionID uint) (*model.KnowledgeOption, error) {
	var o model.KnowledgeOption
	err := r.DB.First(&o, optionID).Error
	return &o, err
}

func (r *KnowledgeRepository) CountQuestions(setID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.KnowledgeQuestion{}).Where("set_id = ?", setID).Count(&count).Error
	return count, err
}

func (r *KnowledgeRepository) InsertProgress(p *model.KnowledgeProgress) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *KnowledgeRepository) ListProgress(childID, setID uint) ([]model.KnowledgeProgress, error) {
	var rows []model.KnowledgeProgress
	err := r.DB.Where("child_id = ? AND set_id = ?", childID, setID).Find(&rows).Error
	return rows, err
}

// EnsureUserTask creates the lazy completion record on first contact
// and returns the row either way.
func (r *KnowledgeRepository) EnsureUserTask(task *model.UserTask) (*model.UserTask, error) {
	if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(task).Error; err != nil {
		return nil, err
	}

	var existing model.UserTask
	err := r.DB.Where("user_id = ? AND child_id = ? AND set_id = ?",
		task.UserID, task.ChildID, task.SetID).First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *KnowledgeRepository) FinalizeUserTask(id uint, correctCount int) error {
	return r.DB.Model(&model.UserTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"correct_count": correctCount,
			"completed":     "yes",
		}).Error
}

func (r *KnowledgeRepository) FindUserTask(userID, childID, setID uint) (*model.UserTask, error) {
	var task model.UserTask
	err := r.DB.Where("user_id = ? AND child_id = ? AND set_id = ?", userID, childID, setID).
		First(&task).Error
	return &task, err
}
