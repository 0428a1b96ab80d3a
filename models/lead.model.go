package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LeadStatusNew       = "NEW"
	LeadStatusContacted = "CONTACTED"
	LeadStatusClosed    = "CLOSED"

	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// EligibilityCheck is the result of the "am I eligible" form
type EligibilityCheck struct {
	ID                string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name              string         `json:"name" gorm:"not null"`
	Email             string         `json:"email" gorm:"not null;index"`
	Phone             string         `json:"phone"`
	CourseID          *string        `json:"courseId" gorm:"type:varchar(36);index"`
	Course            *Course        `json:"course,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	YearsOfExperience int            `json:"yearsOfExperience"`
	Answers           datatypes.JSON `json:"answers"`
	IsEligible        bool           `json:"isEligible"`
	Status            string         `json:"status" gorm:"type:varchar(16);default:'NEW'"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

func (e *EligibilityCheck) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}

// ContactResponse is a generic contact/response form submission
type ContactResponse struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;index"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message" gorm:"type:text"`
	Source    string    `json:"source"` // page the form was submitted from
	Status    string    `json:"status" gorm:"type:varchar(16);default:'NEW'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *ContactResponse) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// Booking is a consultation call request
type Booking struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"not null;index"`
	Phone         string    `json:"phone"`
	PreferredDate time.Time `json:"preferredDate"`
	Notes         string    `json:"notes" gorm:"type:text"`
	Status        string    `json:"status" gorm:"type:varchar(16);default:'PENDING'"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

// Evaluate decides eligibility from the minimum experience of course
func (e *EligibilityCheck) Evaluate(course *Course) {
	e.CourseID = &course.ID
	e.IsEligible = e.YearsOfExperience >= course.MinExperienceYears
}
