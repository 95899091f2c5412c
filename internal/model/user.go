package model

import (
	"time"
)

type UserRole string

const (
	RoleCandidate  UserRole = "candidate"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email     string    `gorm:"size:120;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Role      UserRole  `gorm:"type:enum('candidate','admin','super_admin');default:'candidate'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
