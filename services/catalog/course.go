package catalog

import (
	"context"

	"rplsite/models"
	"rplsite/ordering"
	"rplsite/revalidate"
	"rplsite/utils"

	"gorm.io/gorm"
)

func sectionScope(sectionID string) ordering.Scope {
	return ordering.Where("section_id", sectionID)
}

// CreateCourse validates in and inserts a course at in.Index among the
// courses of sectionID.
func (s *Service) CreateCourse(ctx context.Context, sectionID string, in CourseInput) (*models.Course, error) {
	in.Normalize()
	if err := validate(in); err != nil {
		return nil, err
	}
	link := utils.Slugify(in.Title)
	if link == "" {
		return nil, fieldError("title", "Title must contain letters or digits!")
	}

	course := &models.Course{Link: link}
	in.apply(course)

	var section models.Section
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&section, "id = ?", sectionID).Error; err != nil {
			return notFound(err, ErrSectionNotFound)
		}
		if err := linkFree[models.Course](tx, link); err != nil {
			return err
		}
		course.SectionID = section.ID
		return ordering.Insert(tx, sectionScope(section.ID), course, in.Index)
	})
	if err != nil {
		return nil, classify("create course", err)
	}

	revalidate.Notify(ctx, s.notifier, courseTarget(section.Link, course.Link))
	return course, nil
}

// UpdateCourse replaces the editable fields of a course and places it at
// in.Index of sectionID. A different sectionID moves the course to that
// section.
func (s *Service) UpdateCourse(ctx context.Context, id, sectionID string, in CourseInput) (*models.Course, error) {
	in.Normalize()
	if err := validate(in); err != nil {
		return nil, err
	}

	var course models.Course
	var from, to models.Section
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&course, "id = ?", id).Error; err != nil {
			return notFound(err, ErrCourseNotFound)
		}
		if err := tx.First(&from, "id = ?", course.SectionID).Error; err != nil {
			return notFound(err, ErrSectionNotFound)
		}

		if sectionID == "" || sectionID == course.SectionID {
			to = from
			if err := ordering.Move(tx, sectionScope(course.SectionID), &course, in.Index); err != nil {
				return err
			}
		} else {
			if err := tx.First(&to, "id = ?", sectionID).Error; err != nil {
				return notFound(err, ErrSectionNotFound)
			}
			if err := ordering.Transfer(tx, sectionScope(from.ID), sectionScope(to.ID), &course, in.Index); err != nil {
				return err
			}
			course.SectionID = to.ID
		}

		in.apply(&course)
		return tx.Save(&course).Error
	})
	if err != nil {
		return nil, classify("update course", err)
	}

	revalidate.Notify(ctx, s.notifier, merge(
		courseTarget(from.Link, course.Link),
		courseTarget(to.Link, course.Link),
	))
	return &course, nil
}

// DeleteCourse removes a course of sectionID and closes the gap it leaves.
func (s *Service) DeleteCourse(ctx context.Context, id, sectionID string) error {
	var course models.Course
	var section models.Section
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&course, "id = ? AND section_id = ?", id, sectionID).Error; err != nil {
			return notFound(err, ErrCourseNotFound)
		}
		if err := tx.First(&section, "id = ?", course.SectionID).Error; err != nil {
			return notFound(err, ErrSectionNotFound)
		}
		return ordering.Remove(tx, sectionScope(section.ID), &course)
	})
	if err != nil {
		return classify("delete course", err)
	}

	revalidate.Notify(ctx, s.notifier, courseTarget(section.Link, course.Link))
	return nil
}

// ListCourses returns the courses of a section in display order.
func (s *Service) ListCourses(ctx context.Context, sectionID string) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.WithContext(ctx).Where("section_id = ?", sectionID).Order(ordering.Column).Find(&courses).Error
	return courses, err
}

// GetCourse loads a course with its section by id.
func (s *Service) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	return s.findCourse(ctx, "id = ?", id)
}

// CourseByLink loads a course with its section by link.
func (s *Service) CourseByLink(ctx context.Context, link string) (*models.Course, error) {
	return s.findCourse(ctx, "link = ?", link)
}

func (s *Service) findCourse(ctx context.Context, query, arg string) (*models.Course, error) {
	var course models.Course
	if err := s.db.WithContext(ctx).Preload("Section").Where(query, arg).First(&course).Error; err != nil {
		return nil, notFound(err, ErrCourseNotFound)
	}
	return &course, nil
}
