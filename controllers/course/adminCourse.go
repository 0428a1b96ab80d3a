package controllers

import (
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/services/catalog"

	"github.com/gofiber/fiber/v2"
)

// AdminListCourses lists the courses of a section in display order
func AdminListCourses(c *fiber.Ctx) error {
	svc := catalogService()
	section, err := svc.GetSection(c.UserContext(), c.Locals("sectionID").(string))
	if err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"section": section,
		"courses": section.Courses,
	})
}

// AdminCreateCourse creates a course at the requested position of a section
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*catalog.CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := catalogService().CreateCourse(c.UserContext(), c.Locals("sectionID").(string), *reqData)
	if err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminGetCourse gets a single course of a section
func AdminGetCourse(c *fiber.Ctx) error {
	course, err := courseInSection(c)
	if err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// AdminUpdateCourse updates a course, moving it within its section or to the
// section given in the body
func AdminUpdateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*catalog.CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	current, err := courseInSection(c)
	if err != nil {
		return catalogError(c, err)
	}

	target, _ := c.Locals("targetSectionID").(string)
	if target == "" {
		target = current.SectionID
	}

	course, err := catalogService().UpdateCourse(c.UserContext(), current.ID, target, *reqData)
	if err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse deletes a course and closes the gap in its section
func AdminDeleteCourse(c *fiber.Ctx) error {
	err := catalogService().DeleteCourse(c.UserContext(), c.Locals("courseID").(string), c.Locals("sectionID").(string))
	if err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

func courseInSection(c *fiber.Ctx) (*models.Course, error) {
	course, err := catalogService().GetCourse(c.UserContext(), c.Locals("courseID").(string))
	if err != nil {
		return nil, err
	}
	if course.SectionID != c.Locals("sectionID").(string) {
		return nil, catalog.ErrCourseNotFound
	}
	return course, nil
}
