package models

import (
	"time"

	"gorm.io/gorm"
)

// Course is a qualification offered under a Section. Courses are ordered
// within their section.
type Course struct {
	ID                  string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	SectionID           string    `json:"sectionId" gorm:"type:varchar(36);index;not null"`
	Section             *Section  `json:"section,omitempty"`
	Index               int       `json:"index" gorm:"column:order_index;not null;index"`
	Link                string    `json:"link" gorm:"type:varchar(255);uniqueIndex;not null"`
	Title               string    `json:"title" gorm:"not null"`
	Code                string    `json:"code"` // national qualification code, e.g. CPC30220
	MetaTitle           string    `json:"metaTitle"`
	MetaDescription     string    `json:"metaDescription" gorm:"type:text"`
	ImageSquareLink     string    `json:"imageSquareLink"`
	ImageSquarePublicId string    `json:"imageSquarePublicId"`
	ImageCoverLink      string    `json:"imageCoverLink"`
	ImageCoverPublicId  string    `json:"imageCoverPublicId"`
	Description         string    `json:"description" gorm:"type:text"`
	EntryRequirement    string    `json:"entryRequirement" gorm:"type:text"`
	CareerOutcome       string    `json:"careerOutcome" gorm:"type:text"`
	DeliveryMode        string    `json:"deliveryMode"`
	Duration            string    `json:"duration"`
	MinExperienceYears  int       `json:"minExperienceYears" gorm:"default:0"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

func (c *Course) Key() string { return c.ID }
func (c *Course) Position() int { return c.Index }
func (c *Course) SetPosition(i int) { c.Index = i }
