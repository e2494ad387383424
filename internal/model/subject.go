package model

// Subject is a skill checklist a parent fills in about their child
// (nine yes/no questions). The yes-count maps to a skilled age.
type Subject struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Language string `gorm:"size:10;default:'en'" json:"language"`
	AgeMin   int    `gorm:"default:0" json:"ageMin"`
	AgeMax   int    `gorm:"default:0" json:"ageMax"`

	Questions []SubjectQuestion `gorm:"foreignKey:SubjectID" json:"questions,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}

type SubjectQuestion struct {
	BaseModel
	SubjectID uint   `gorm:"index;not null" json:"subjectId"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Order     int    `gorm:"default:0" json:"order"`
}

func (SubjectQuestion) TableName() string {
	return "subject_questions"
}

// SubjectProgress is one yes/no answer within a subject checklist.
type SubjectProgress struct {
	BaseModel
	UserID     uint   `gorm:"index;not null" json:"userId"`
	ChildID    uint   `gorm:"not null;uniqueIndex:idx_subject_progress" json:"childId"`
	SubjectID  uint   `gorm:"not null;uniqueIndex:idx_subject_progress" json:"subjectId"`
	QuestionID uint   `gorm:"not null;uniqueIndex:idx_subject_progress" json:"questionId"`
	Answer     string `gorm:"size:5;not null" json:"answer"` // yes | no
}

func (SubjectProgress) TableName() string {
	return "subject_progress"
}

// SubjectCompletion holds the derived skilled age for a child on a
// subject. Created lazily, finalized once, never deleted.
type SubjectCompletion struct {
	BaseModel
	UserID     uint   `gorm:"not null;uniqueIndex:idx_subject_completion" json:"userId"`
	ChildID    uint   `gorm:"not null;uniqueIndex:idx_subject_completion" json:"childId"`
	SubjectID  uint   `gorm:"not null;uniqueIndex:idx_subject_completion" json:"subjectId"`
	YesCount   int    `gorm:"default:0" json:"yesCount"`
	SkilledAge int    `gorm:"default:0" json:"skilledAge"`
	Completed  string `gorm:"size:5;default:'no'" json:"completed"` // yes | no
}

func (SubjectCompletion) TableName() string {
	return "user_subject_completion"
}
