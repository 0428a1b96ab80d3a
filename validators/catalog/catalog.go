package catalogValidator

import (
	"strings"

	"rplsite/middleware"
	"rplsite/services/catalog"
	"rplsite/validators"

	"github.com/gofiber/fiber/v2"
)

// ============ Section Validators ============

// SectionForm validates a section create or update payload
func SectionForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(catalog.SectionInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Normalize()
		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// SectionID validates the :section_id route parameter
func SectionID() fiber.Handler {
	return requireParam("section_id", "sectionID", "Section ID is required!")
}

// ============ Course Validators ============

// CourseForm validates a course create or update payload
func CourseForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			catalog.CourseInput
			// target section on update, empty keeps the current one
			SectionID string `json:"sectionId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.CourseInput.Normalize()
		if errors := validators.Struct(reqData.CourseInput); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", &reqData.CourseInput)
		c.Locals("targetSectionID", strings.TrimSpace(reqData.SectionID))
		return c.Next()
	}
}

// CourseID validates the :course_id route parameter
func CourseID() fiber.Handler {
	return requireParam("course_id", "courseID", "Course ID is required!")
}

// Link validates the :link route parameter of public reads
func Link() fiber.Handler {
	return requireParam("link", "link", "Link is required!")
}

func requireParam(param, local, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := strings.TrimSpace(c.Params(param))
		if value == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
		}
		c.Locals(local, value)
		return c.Next()
	}
}
