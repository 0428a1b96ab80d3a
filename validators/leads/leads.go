package leadValidator

import (
	"strings"
	"time"

	"rplsite/middleware"
	"rplsite/validators"

	"github.com/gofiber/fiber/v2"
)

// EligibilityRequest is the "am I eligible" form
type EligibilityRequest struct {
	Name              string                 `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email             string                 `json:"email" form:"email" validate:"required,email"`
	Phone             string                 `json:"phone" form:"phone" validate:"omitempty,phone"`
	CourseID          string                 `json:"courseId" form:"courseId" validate:"required"`
	YearsOfExperience int                    `json:"yearsOfExperience" form:"yearsOfExperience" validate:"min=0,max=60"`
	Answers           map[string]interface{} `json:"answers" form:"-"`
}

// ContactRequest is the generic contact form
type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Phone   string `json:"phone" form:"phone" validate:"omitempty,phone"`
	Message string `json:"message" form:"message" validate:"required,min=10,max=5000"`
	Source  string `json:"source" form:"source" validate:"max=200"`
}

// BookingRequest asks for a consultation call
type BookingRequest struct {
	Name          string    `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email         string    `json:"email" form:"email" validate:"required,email"`
	Phone         string    `json:"phone" form:"phone" validate:"required,phone"`
	PreferredDate time.Time `json:"preferredDate" form:"preferredDate" validate:"required"`
	Notes         string    `json:"notes" form:"notes" validate:"max=2000"`
}

func trimContact(name, email, phone *string) {
	*name = strings.TrimSpace(*name)
	*email = strings.ToLower(strings.TrimSpace(*email))
	*phone = strings.TrimSpace(*phone)
}

func Eligibility() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EligibilityRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		trimContact(&reqData.Name, &reqData.Email, &reqData.Phone)
		reqData.CourseID = strings.TrimSpace(reqData.CourseID)

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEligibility", reqData)
		return c.Next()
	}
}

func Contact() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ContactRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		trimContact(&reqData.Name, &reqData.Email, &reqData.Phone)
		reqData.Message = strings.TrimSpace(reqData.Message)
		reqData.Source = strings.TrimSpace(reqData.Source)

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContact", reqData)
		return c.Next()
	}
}

func Booking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BookingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		trimContact(&reqData.Name, &reqData.Email, &reqData.Phone)
		reqData.Notes = strings.TrimSpace(reqData.Notes)

		errors := validators.Struct(reqData)
		if _, invalid := errors["preferredDate"]; !invalid && !reqData.PreferredDate.After(time.Now()) {
			if errors == nil {
				errors = map[string]string{}
			}
			errors["preferredDate"] = "Preferred date must be in the future!"
		}
		if errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBooking", reqData)
		return c.Next()
	}
}

// Status validates a status change against the allowed statuses
func Status(statuses ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Params("id"))
		if id == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		status := strings.ToUpper(strings.TrimSpace(reqData.Status))

		allowed := false
		for _, s := range statuses {
			allowed = allowed || s == status
		}
		if !allowed {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be one of " + strings.Join(statuses, ", ") + "!",
			})
		}

		c.Locals("leadID", id)
		c.Locals("status", status)
		return c.Next()
	}
}
