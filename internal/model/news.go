package model

import "time"

// News is one article. Articles covering the same story from different
// viewpoints share a NewsGroupID; the grouped feed collapses them into
// a single entry with the union of viewpoints.
type News struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Summary     string     `gorm:"type:text" json:"summary"`
	Body        string     `gorm:"type:text" json:"body"`
	ImageURL    string     `gorm:"size:512" json:"imageUrl"`
	Category    string     `gorm:"size:50;index" json:"category"`
	Language    string     `gorm:"size:10;default:'en';index" json:"language"`
	NewsGroupID uint       `gorm:"index" json:"newsGroupId"`
	Viewpoint   string     `gorm:"size:50" json:"viewpoint"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

func (News) TableName() string {
	return "news"
}

// Debate is a two-sided discussion topic, usually spun off a news group.
type Debate struct {
	BaseModel
	Topic       string `gorm:"size:255;not null" json:"topic"`
	Description string `gorm:"type:text" json:"description"`
	SideFor     string `gorm:"size:255" json:"sideFor"`
	SideAgainst string `gorm:"size:255" json:"sideAgainst"`
	Language    string `gorm:"size:10;default:'en'" json:"language"`
	NewsGroupID uint   `gorm:"index" json:"newsGroupId"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
}

func (Debate) TableName() string {
	return "debates"
}

// DebateMessage is one turn in a user's AI debate session.
type DebateMessage struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	DebateID uint   `gorm:"index;not null" json:"debateId"`
	Side     string `gorm:"size:10" json:"side"` // for | against
	Role     string `gorm:"size:20;not null" json:"role"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (DebateMessage) TableName() string {
	return "debate_messages"
}
