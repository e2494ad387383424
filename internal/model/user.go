package model

import (
	"time"
)

type UserRole string

const (
	Member UserRole = "member"
	Editor UserRole = "editor"
	Admin  UserRole = "admin"
)

type UserPlan string

const (
	PlanFree    UserPlan = "free"
	PlanPremium UserPlan = "premium"
)

type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'member'" json:"role"`
	Plan      UserPlan  `gorm:"size:20;default:'free'" json:"plan"`
	Language  string    `gorm:"size:10;default:'en'" json:"language"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"lastLogin"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// Child is a kid profile under a parent account. Quiz sequences and
// progress rows hang off the child, not the account.
type Child struct {
	BaseModel
	UserID uint      `gorm:"index;not null" json:"userId"`
	Name   string    `gorm:"size:100;not null" json:"name"`
	DOB    time.Time `gorm:"not null" json:"dob"`
	Gender string    `gorm:"size:10" json:"gender"`
	Avatar string    `gorm:"size:255" json:"avatar"`
}

func (Child) TableName() string {
	return "children"
}
