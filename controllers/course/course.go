package controllers

import (
	"rplsite/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetSections lists the public catalog: sections with their courses
func GetSections(c *fiber.Ctx) error {
	sections, err := catalogService().ListSections(c.UserContext(), true)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections fetched successfully!", fiber.Map{
		"sections": sections,
	})
}

// GetSectionByLink gets a public section page
func GetSectionByLink(c *fiber.Ctx) error {
	section, err := catalogService().SectionByLink(c.UserContext(), c.Locals("link").(string))
	if err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section fetched successfully!", section)
}

// GetCourseByLink gets a public course page
func GetCourseByLink(c *fiber.Ctx) error {
	course, err := catalogService().CourseByLink(c.UserContext(), c.Locals("link").(string))
	if err != nil {
		return catalogError(c, err)
	}
	if course.Section != nil {
		c.Locals("sectionLink", course.Section.Link)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}
