package model

// Test is a graded assessment. Every question is worth up to
// MarksPerQuestion (1000); the chosen option's Marks value is what the
// child actually earns, so partial credit is possible.
type Test struct {
	BaseModel
	Title    string `gorm:"size:255;not null" json:"title"`
	Category string `gorm:"size:50;index" json:"category"`
	Language string `gorm:"size:10;default:'en'" json:"language"`

	Questions []TestQuestion `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

type TestQuestion struct {
	BaseModel
	TestID  uint   `gorm:"index;not null" json:"testId"`
	Content string `gorm:"type:text;not null" json:"content"`
	Order   int    `gorm:"default:0" json:"order"`

	Options []TestOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}

type TestOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:512;not null" json:"text"`
	Marks      int    `gorm:"default:0" json:"-"`
}

func (TestOption) TableName() string {
	return "test_options"
}

// TestProgress is one recorded answer within a test. Marks are copied
// from the chosen option server-side, never taken from the request.
type TestProgress struct {
	BaseModel
	UserID     uint `gorm:"not null;uniqueIndex:idx_test_progress" json:"userId"`
	TestID     uint `gorm:"not null;uniqueIndex:idx_test_progress" json:"testId"`
	QuestionID uint `gorm:"not null;uniqueIndex:idx_test_progress" json:"questionId"`
	AnswerID   uint `gorm:"not null" json:"answerId"`
	Marks      int  `gorm:"default:0" json:"marks"`
}

func (TestProgress) TableName() string {
	return "test_progress"
}

// UserTest is the lazy completion record for a test, written once at
// finalization with the score, percentage and awarded stars.
type UserTest struct {
	BaseModel
	UserID     uint    `gorm:"not null;uniqueIndex:idx_user_test" json:"userId"`
	TestID     uint    `gorm:"not null;uniqueIndex:idx_user_test" json:"testId"`
	Score      int     `gorm:"default:0" json:"score"`
	Percentage float64 `gorm:"default:0" json:"percentage"`
	Stars      int     `gorm:"default:0" json:"stars"`
	Completed  string  `gorm:"size:5;default:'no'" json:"completed"` // yes | no
}

func (UserTest) TableName() string {
	return "user_tests"
}

// StarPercent maps a minimum percentage to a star count. Rows are
// seeded at migration and read ordered by min_percentage descending;
// the first row at or below the computed percentage wins.
type StarPercent struct {
	BaseModel
	MinPercentage float64 `gorm:"not null;uniqueIndex" json:"minPercentage"`
	Stars         int     `gorm:"not null" json:"stars"`
}

func (StarPercent) TableName() string {
	return "star_percent"
}
