package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var s model.Subject
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("subject_questions.`order` asc, subject_questions.id asc")
	}).First(&s, id).Error
	return &s, err
}

func (r *SubjectRepository) List(language string, page, limit int) ([]model.Subject, int64, error) {
	var subjects []model.Subject
	var total int64

	query := r.DB.Model(&model.Subject{})
	if language != "" {
		query = query.Where("language = ?", language)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&subjects).Error
	return subjects, total, err
}

func (r *SubjectRepository) InsertProgress(p *model.SubjectProgress) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *SubjectRepository) CountAnswers(childID, subjectID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.SubjectProgress{}).
		Where("child_id = ? AND subject_id = ?", childID, subjectID).
		Count(&count).Error
	return count, err
}

func (r *SubjectRepository) CountYes(childID, subjectID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.SubjectProgress{}).
		Where("child_id = ? AND subject_id = ? AND answer = ?", childID, subjectID, "yes").
		Count(&count).Error
	return count, err
}

func (r *SubjectRepository) EnsureCompletion(sc *model.SubjectCompletion) (*model.SubjectCompletion, error) {
	if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(sc).Error; err != nil {
		return nil, err
	}

	var existing model.SubjectCompletion
	err := r.DB.Where("user_id = ? AND child_id = ? AND subject_id = ?",
		sc.UserID, sc.ChildID, sc.SubjectID).First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *SubjectRepository) FinalizeCompletion(id uint, yesCount, skilledAge int) error {
	return r.DB.Model(&model.SubjectCompletion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"yes_count":   yesCount,
			"skilled_age": skilledAge,
			"completed":   "yes",
		}).Error
}

func (r *SubjectRepository) FindCompletion(userID, childID, subjectID uint) (*model.SubjectCompletion, error) {
	var sc model.SubjectCompletion
	err := r.DB.Where("user_id = ? AND child_id = ? AND subject_id = ?", userID, childID, subjectID).
		First(&sc).Error
	return &sc, err
}
