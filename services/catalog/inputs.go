package catalog

import (
	"strings"

	"rplsite/models"
)

// SectionInput is the validated form payload of a section.
type SectionInput struct {
	Title               string `json:"title" validate:"required,min=3,max=200"`
	Index               int    `json:"index" validate:"min=1"`
	MetaTitle           string `json:"metaTitle" validate:"required,min=3,max=200"`
	MetaDescription     string `json:"metaDescription" validate:"required,min=10,max=500"`
	Description         string `json:"description" validate:"omitempty,richtext=20"`
	ImageSquareLink     string `json:"imageSquareLink" validate:"required,url"`
	ImageSquarePublicId string `json:"imageSquarePublicId" validate:"required"`
	ImageCoverLink      string `json:"imageCoverLink" validate:"required,url"`
	ImageCoverPublicId  string `json:"imageCoverPublicId" validate:"required"`
}

// Normalize trims every text field.
func (in *SectionInput) Normalize() {
	trim(&in.Title, &in.MetaTitle, &in.MetaDescription, &in.Description,
		&in.ImageSquareLink, &in.ImageSquarePublicId, &in.ImageCoverLink, &in.ImageCoverPublicId)
}

// apply copies the editable fields. Index and Link are owned by the service.
func (in SectionInput) apply(s *models.Section) {
	s.Title = in.Title
	s.MetaTitle = in.MetaTitle
	s.MetaDescription = in.MetaDescription
	s.Description = in.Description
	s.ImageSquareLink = in.ImageSquareLink
	s.ImageSquarePublicId = in.ImageSquarePublicId
	s.ImageCoverLink = in.ImageCoverLink
	s.ImageCoverPublicId = in.ImageCoverPublicId
}

// CourseInput is the validated form payload of a course.
type CourseInput struct {
	Title               string `json:"title" validate:"required,min=3,max=200"`
	Index               int    `json:"index" validate:"min=1"`
	Code                string `json:"code" validate:"omitempty,alphanum,max=20"`
	MetaTitle           string `json:"metaTitle" validate:"required,min=3,max=200"`
	MetaDescription     string `json:"metaDescription" validate:"required,min=10,max=500"`
	ImageSquareLink     string `json:"imageSquareLink" validate:"required,url"`
	ImageSquarePublicId string `json:"imageSquarePublicId" validate:"required"`
	ImageCoverLink      string `json:"imageCoverLink" validate:"required,url"`
	ImageCoverPublicId  string `json:"imageCoverPublicId" validate:"required"`
	Description         string `json:"description" validate:"required,richtext=50"`
	EntryRequirement    string `json:"entryRequirement" validate:"required,richtext=20"`
	CareerOutcome       string `json:"careerOutcome" validate:"omitempty,richtext=20"`
	DeliveryMode        string `json:"deliveryMode" validate:"omitempty,oneof=ONLINE ON_CAMPUS BLENDED"`
	Duration            string `json:"duration" validate:"omitempty,max=100"`
	MinExperienceYears  int    `json:"minExperienceYears" validate:"min=0,max=50"`
}

// Normalize trims every text field.
func (in *CourseInput) Normalize() {
	trim(&in.Title, &in.Code, &in.MetaTitle, &in.MetaDescription,
		&in.ImageSquareLink, &in.ImageSquarePublicId, &in.ImageCoverLink, &in.ImageCoverPublicId,
		&in.Description, &in.EntryRequirement, &in.CareerOutcome, &in.DeliveryMode, &in.Duration)
	in.Code = strings.ToUpper(in.Code)
}

func (in CourseInput) apply(c *models.Course) {
	c.Title = in.Title
	c.Code = in.Code
	c.MetaTitle = in.MetaTitle
	c.MetaDescription = in.MetaDescription
	c.ImageSquareLink = in.ImageSquareLink
	c.ImageSquarePublicId = in.ImageSquarePublicId
	c.ImageCoverLink = in.ImageCoverLink
	c.ImageCoverPublicId = in.ImageCoverPublicId
	c.Description = in.Description
	c.EntryRequirement = in.EntryRequirement
	c.CareerOutcome = in.CareerOutcome
	c.DeliveryMode = in.DeliveryMode
	c.Duration = in.Duration
	c.MinExperienceYears = in.MinExperienceYears
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
