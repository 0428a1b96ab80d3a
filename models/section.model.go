package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section groups courses on the public catalog. Sections are ordered globally.
type Section struct {
	ID                  string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Index               int       `json:"index" gorm:"column:order_index;not null;index"`
	Link                string    `json:"link" gorm:"type:varchar(255);uniqueIndex;not null"`
	Title               string    `json:"title" gorm:"not null"`
	MetaTitle           string    `json:"metaTitle"`
	MetaDescription     string    `json:"metaDescription" gorm:"type:text"`
	Description         string    `json:"description" gorm:"type:text"`
	ImageSquareLink     string    `json:"imageSquareLink"`
	ImageSquarePublicId string    `json:"imageSquarePublicId"`
	ImageCoverLink      string    `json:"imageCoverLink"`
	ImageCoverPublicId  string    `json:"imageCoverPublicId"`
	Courses             []Course  `json:"courses,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:RESTRICT"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

func (s *Section) Key() string { return s.ID }
func (s *Section) Position() int { return s.Index }
func (s *Section) SetPosition(i int) { s.Index = i }

// assignID gives a new row its opaque identifier
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
