package reviewValidator

import (
	"strings"

	"rplsite/middleware"
	"rplsite/validators"

	"github.com/gofiber/fiber/v2"
)

// SubmitRequest is a testimonial left from the public site
type SubmitRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"max=2000"`
	CourseID string `json:"courseId"`
}

func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.Comment = strings.TrimSpace(reqData.Comment)
		reqData.CourseID = strings.TrimSpace(reqData.CourseID)

		if errors := validators.Struct(reqData); errors != nil {
			if _, ok := errors["rating"]; ok {
				errors["rating"] = "Rating must be between 1 and 5!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

// ReviewID validates the :id route parameter
func ReviewID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Params("id"))
		if id == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Review ID is required!", nil)
		}
		c.Locals("reviewID", id)
		return c.Next()
	}
}
