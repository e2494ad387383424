package model

// KnowledgeSet is a themed fact-check quiz attached to the news feed
// (quick "did you read it" checks rather than graded tests).
type KnowledgeSet struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Category    string `gorm:"size:50;index" json:"category"`
	Language    string `gorm:"size:10;default:'en'" json:"language"`
	NewsGroupID uint   `gorm:"index" json:"newsGroupId"`

	Questions []KnowledgeQuestion `gorm:"foreignKey:SetID" json:"questions,omitempty"`
}

func (KnowledgeSet) TableName() string {
	return "knowledge_sets"
}

type KnowledgeQuestion struct {
	BaseModel
	SetID   uint   `gorm:"index;not null" json:"setId"`
	Content string `gorm:"type:text;not null" json:"content"`
	Order   int    `gorm:"default:0" json:"order"`

	Options []KnowledgeOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (KnowledgeQuestion) TableName() string {
	return "knowledge_questions"
}

type KnowledgeOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:512;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (KnowledgeOption) TableName() string {
	return "knowledge_options"
}

// KnowledgeProgress is one recorded answer within a knowledge set.
type KnowledgeProgress struct {
	BaseModel
	UserID     uint `gorm:"index;not null" json:"userId"`
	ChildID    uint `gorm:"not null;uniqueIndex:idx_knowledge_progress" json:"childId"`
	SetID      uint `gorm:"not null;uniqueIndex:idx_knowledge_progress" json:"setId"`
	QuestionID uint `gorm:"not null;uniqueIndex:idx_knowledge_progress" json:"questionId"`
	OptionID   uint `gorm:"not null" json:"optionId"`
	IsCorrect  bool `gorm:"default:false" json:"isCorrect"`
}

func (KnowledgeProgress) TableName() string {
	return "knowledge_progress"
}

// UserTask is the lazy completion record for a knowledge set: created
// on first answer, finalized once with the correct-answer count. Never
// deleted.
type UserTask struct {
	BaseModel
	UserID       uint   `gorm:"not null;uniqueIndex:idx_user_task" json:"userId"`
	ChildID      uint   `gorm:"not null;uniqueIndex:idx_user_task" json:"childId"`
	SetID        uint   `gorm:"not null;uniqueIndex:idx_user_task" json:"setId"`
	CorrectCount int    `gorm:"default:0" json:"correctCount"`
	Completed    string `gorm:"size:5;default:'no'" json:"completed"` // yes | no
}

func (UserTask) TableName() string {
	return "user_tasks"
}
