package catalog

import (
	"context"

	"rplsite/models"
	"rplsite/ordering"
	"rplsite/revalidate"
	"rplsite/utils"

	"gorm.io/gorm"
)

// CreateSection validates in, derives the link from the title and inserts
// the section at in.Index.
func (s *Service) CreateSection(ctx context.Context, in SectionInput) (*models.Section, error) {
	in.Normalize()
	if err := validate(in); err != nil {
		return nil, err
	}
	link := utils.Slugify(in.Title)
	if link == "" {
		return nil, fieldError("title", "Title must contain letters or digits!")
	}

	section := &models.Section{Link: link}
	in.apply(section)

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := linkFree[models.Section](tx, link); err != nil {
			return err
		}
		return ordering.Insert(tx, ordering.All, section, in.Index)
	})
	if err != nil {
		return nil, classify("create section", err)
	}

	revalidate.Notify(ctx, s.notifier, sectionTarget(section.Link))
	return section, nil
}

// UpdateSection replaces the editable fields of a section and moves it to
// in.Index. The link stays as it was created.
func (s *Service) UpdateSection(ctx context.Context, id string, in SectionInput) (*models.Section, error) {
	in.Normalize()
	if err := validate(in); err != nil {
		return nil, err
	}

	var section models.Section
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&section, "id = ?", id).Error; err != nil {
			return notFound(err, ErrSectionNotFound)
		}
		if err := ordering.Move(tx, ordering.All, &section, in.Index); err != nil {
			return err
		}
		in.apply(&section)
		return tx.Save(&section).Error
	})
	if err != nil {
		return nil, classify("update section", err)
	}

	revalidate.Notify(ctx, s.notifier, sectionTarget(section.Link))
	return &section, nil
}

// DeleteSection removes an empty section and closes the gap it leaves.
// Sections that still own courses are refused with ErrSectionHasCourses.
func (s *Service) DeleteSection(ctx context.Context, id string) error {
	var section models.Section
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&section, "id = ?", id).Error; err != nil {
			return notFound(err, ErrSectionNotFound)
		}
		courses, err := ordering.Count[models.Course](tx, ordering.Where("section_id", section.ID))
		if err != nil {
			return err
		}
		if courses > 0 {
			return ErrSectionHasCourses
		}
		return ordering.Remove(tx, ordering.All, &section)
	})
	if err != nil {
		return classify("delete section", err)
	}

	revalidate.Notify(ctx, s.notifier, sectionTarget(section.Link))
	return nil
}

// ListSections returns every section in display order, with their courses
// when withCourses is set.
func (s *Service) ListSections(ctx context.Context, withCourses bool) ([]models.Section, error) {
	q := s.db.WithContext(ctx).Order(ordering.Column)
	if withCourses {
		q = q.Preload("Courses", orderCourses)
	}
	var sections []models.Section
	if err := q.Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// GetSection loads a section and its courses by id.
func (s *Service) GetSection(ctx context.Context, id string) (*models.Section, error) {
	return s.findSection(ctx, "id = ?", id)
}

// SectionByLink loads a section and its courses by link.
func (s *Service) SectionByLink(ctx context.Context, link string) (*models.Section, error) {
	return s.findSection(ctx, "link = ?", link)
}

func (s *Service) findSection(ctx context.Context, query string, arg string) (*models.Section, error) {
	var section models.Section
	err := s.db.WithContext(ctx).Preload("Courses", orderCourses).Where(query, arg).First(&section).Error
	if err != nil {
		return nil, notFound(err, ErrSectionNotFound)
	}
	return &section, nil
}

func orderCourses(db *gorm.DB) *gorm.DB {
	return db.Order(ordering.Column)
}
