package model

type QuizType string

const (
	QuizTypeLearning QuizType = "learning"
	QuizTypeCareer   QuizType = "career"
)

// Quiz is a children's learning quiz (multiple choice, one correct
// option per question).
type Quiz struct {
	BaseModel
	Title    string `gorm:"size:255;not null" json:"title"`
	Category string `gorm:"size:50;index" json:"category"`
	Language string `gorm:"size:10;default:'en'" json:"language"`
	AgeMin   int    `gorm:"default:0" json:"ageMin"`
	AgeMax   int    `gorm:"default:0" json:"ageMax"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	BaseModel
	QuizID  uint   `gorm:"index;not null" json:"quizId"`
	Content string `gorm:"type:text;not null" json:"content"`
	Order   int    `gorm:"default:0" json:"order"`

	Options []QuizOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type QuizOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:512;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (QuizOption) TableName() string {
	return "quiz_options"
}

// QuizSequence marks a (user, child, quiz) attempt as started and,
// once finalized, completed. One row per (user, child, type, quiz),
// mirroring the progress uniqueness, so a child keeps the same run
// across birthdays. Age and weeks record when the run was started.
// The composite unique index makes EnsureSequence safe under
// concurrent first answers.
type QuizSequence struct {
	BaseModel
	UserID       uint     `gorm:"not null;uniqueIndex:idx_quiz_sequence" json:"userId"`
	ChildID      uint     `gorm:"not null;uniqueIndex:idx_quiz_sequence" json:"childId"`
	QuizType     QuizType `gorm:"size:20;not null;uniqueIndex:idx_quiz_sequence" json:"quizType"`
	QuizID       uint     `gorm:"not null;uniqueIndex:idx_quiz_sequence" json:"quizId"`
	Age          int      `gorm:"not null" json:"age"`
	Weeks        int      `gorm:"not null" json:"weeks"`
	TypeSequence string   `gorm:"size:10" json:"typeSequence"`
	IsStarted    bool     `gorm:"default:true" json:"isStarted"`
	IsCompleted  bool     `gorm:"default:false" json:"isCompleted"`
}

func (QuizSequence) TableName() string {
	return "quiz_sequences"
}

// QuizProgress is one recorded answer within a learning quiz. One row
// per (child, quiz, question); duplicates are rejected, not upserted.
type QuizProgress struct {
	BaseModel
	UserID     uint `gorm:"index;not null" json:"userId"`
	ChildID    uint `gorm:"not null;uniqueIndex:idx_quiz_progress" json:"childId"`
	QuizID     uint `gorm:"not null;uniqueIndex:idx_quiz_progress" json:"quizId"`
	QuestionID uint `gorm:"not null;uniqueIndex:idx_quiz_progress" json:"questionId"`
	OptionID   uint `gorm:"not null" json:"optionId"`
	IsCorrect  bool `gorm:"default:false" json:"isCorrect"`
}

func (QuizProgress) TableName() string {
	return "quiz_progress"
}
