package superAdminValidator

import (
	"strings"

	"rplsite/middleware"
	"rplsite/models"
	"rplsite/validators"

	"github.com/gofiber/fiber/v2"
)

// CreateUserRequest is the payload used to add a back-office account
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN EDITOR"`
}

// UpdateUserRequest changes the role or block state of an account
type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=3,max=100"`
	Role      *string `json:"role" validate:"omitempty,oneof=ADMIN EDITOR"`
	IsBlocked *bool   `json:"isBlocked"`
}

func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		if reqData.Role == "" {
			reqData.Role = models.RoleEditor
		}
		reqData.Role = strings.ToUpper(reqData.Role)

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Role != nil {
			role := strings.ToUpper(strings.TrimSpace(*reqData.Role))
			reqData.Role = &role
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}
		if reqData.Name == nil && reqData.Role == nil && reqData.IsBlocked == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}

// UserID validates the :id route parameter
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Params("id"))
		if id == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}
		c.Locals("targetUserID", id)
		return c.Next()
	}
}
