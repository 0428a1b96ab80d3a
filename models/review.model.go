package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReviewStatusPending  = "PENDING"
	ReviewStatusApproved = "APPROVED"
	ReviewStatusRejected = "REJECTED"
)

// Review is a testimonial left from the public site
type Review struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email,omitempty"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment" gorm:"type:text;default:''"`
	CourseID  *string   `json:"courseId" gorm:"type:varchar(36);index"`
	Status    string    `json:"status" gorm:"type:varchar(16);default:'PENDING';index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}
