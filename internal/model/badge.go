package model

type Badge struct {
	BaseModel
	Code        string `gorm:"size:50;unique;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Icon        string `gorm:"size:255" json:"icon"`
	Description string `gorm:"type:text" json:"description"`
}

func (Badge) TableName() string {
	return "badges"
}

// Challenge is a gamified task bundle. Completing TaskCount tasks
// awards the linked badge.
type Challenge struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	BadgeID     uint   `gorm:"index" json:"badgeId"`
	TaskCount   int    `gorm:"not null;default:1" json:"taskCount"`
	Language    string `gorm:"size:10;default:'en'" json:"language"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeProgress is the lazy per-(user, child, challenge) status
// record: created on first task, badge awarded exactly once when
// TasksDone reaches the challenge's TaskCount. Never deleted.
type ChallengeProgress struct {
	BaseModel
	UserID       uint `gorm:"not null;uniqueIndex:idx_challenge_progress" json:"userId"`
	ChildID      uint `gorm:"not null;uniqueIndex:idx_challenge_progress" json:"childId"`
	ChallengeID  uint `gorm:"not null;uniqueIndex:idx_challenge_progress" json:"challengeId"`
	TasksDone    int  `gorm:"default:0" json:"tasksDone"`
	Completed    bool `gorm:"default:false" json:"completed"`
	BadgeAwarded bool `gorm:"default:false" json:"badgeAwarded"`
}

func (ChallengeProgress) TableName() string {
	return "challenge_progress"
}
