package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

// User is a back-office account
type User struct {
	ID        string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"default:'EDITOR'"`
	IsBlocked bool       `json:"isBlocked" gorm:"default:false"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}
