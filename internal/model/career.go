package model

// CareerTest is a RIASEC-style personality assessment. Questions carry
// a category; answers are Likert weights summed per category.
type CareerTest struct {
	BaseModel
	Title    string `gorm:"size:255;not null" json:"title"`
	Language string `gorm:"size:10;default:'en'" json:"language"`

	Questions []CareerQuestion `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

func (CareerTest) TableName() string {
	return "career_tests"
}

type CareerQuestion struct {
	BaseModel
	TestID   uint   `gorm:"index;not null" json:"testId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Category string `gorm:"size:50;not null" json:"category"`
	Order    int    `gorm:"default:0" json:"order"`
}

func (CareerQuestion) TableName() string {
	return "career_questions"
}

// CareerProgress is one recorded Likert answer. Weight and category are
// denormalized from the question so finalization is a single scan.
type CareerProgress struct {
	BaseModel
	UserID     uint   `gorm:"not null;uniqueIndex:idx_career_progress" json:"userId"`
	ChildID    uint   `gorm:"not null;uniqueIndex:idx_career_progress" json:"childId"`
	TestID     uint   `gorm:"not null;uniqueIndex:idx_career_progress" json:"testId"`
	QuestionID uint   `gorm:"not null;uniqueIndex:idx_career_progress" json:"questionId"`
	Weight     int    `gorm:"default:0" json:"weight"`
	Category   string `gorm:"size:50;not null" json:"category"`
}

func (CareerProgress) TableName() string {
	return "user_career_progress"
}

// CareerResult caches the raw AI-generated career compatibility text
// per (user, test). Returned verbatim on later reads; never recomputed.
type CareerResult struct {
	BaseModel
	UserID   uint   `gorm:"not null;uniqueIndex:idx_career_result" json:"userId"`
	TestID   uint   `gorm:"not null;uniqueIndex:idx_career_result" json:"testId"`
	Language string `gorm:"size:10;default:'en'" json:"language"`
	Content  string `gorm:"type:text" json:"content"`
}

func (CareerResult) TableName() string {
	return "career_results"
}
