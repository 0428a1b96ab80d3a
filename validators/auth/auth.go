package authValidator

import (
	"strings"

	"rplsite/middleware"
	"rplsite/validators"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the admin sign-in payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the payload of the password change form
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	CnfPassword     string `json:"cnfPassword" validate:"required,eqfield=NewPassword"`
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// ChangePassword validator middleware
func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChangePasswordRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Struct(reqData)
		if _, mismatch := errors["cnfPassword"]; mismatch && reqData.CnfPassword != "" {
			errors["cnfPassword"] = "New password and confirm password do not match!"
		}
		if errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPassword", reqData)
		return c.Next()
	}
}
