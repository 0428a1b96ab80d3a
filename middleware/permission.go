package middleware

import (
	"rplsite/database"
	"rplsite/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that lets through active users holding
// one of roles. It must run after JWTMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		// role and block state come from the database, not the token
		var user models.User
		err := database.Database.Db.Where("id = ?", userID).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}
		if user.IsBlocked {
			return JsonResponse(c, fiber.StatusForbidden, false, "Your account is blocked!", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("role", user.Role)
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// AdminOnly lets through ADMIN users only
var AdminOnly = RequireRole(models.RoleAdmin)

// Staff lets through ADMIN and EDITOR users
var Staff = RequireRole(models.RoleAdmin, models.RoleEditor)
