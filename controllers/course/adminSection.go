package controllers

import (
	"rplsite/middleware"
	"rplsite/services/catalog"

	"github.com/gofiber/fiber/v2"
)

// AdminListSections lists every section with its courses in display order
func AdminListSections(c *fiber.Ctx) error {
	sections, err := catalogService().ListSections(c.UserContext(), true)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections fetched successfully!", fiber.Map{
		"sections": sections,
	})
}

// AdminCreateSection creates a section at the requested position
func AdminCreateSection(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSection").(*catalog.SectionInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section, err := catalogService().CreateSection(c.UserContext(), *reqData)
	if err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// AdminGetSection gets a single section with its courses
func AdminGetSection(c *fiber.Ctx) error {
	section, err := catalogService().GetSection(c.UserContext(), c.Locals("sectionID").(string))
	if err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section fetched successfully!", section)
}

// AdminUpdateSection updates a section and moves it to the requested position
func AdminUpdateSection(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSection").(*catalog.SectionInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section, err := catalogService().UpdateSection(c.UserContext(), c.Locals("sectionID").(string), *reqData)
	if err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}

// AdminDeleteSection deletes an empty section
func AdminDeleteSection(c *fiber.Ctx) error {
	if err := catalogService().DeleteSection(c.UserContext(), c.Locals("sectionID").(string)); err != nil {
		return catalogError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}
