package superAdminRoutes

import (
	superAdminController "rplsite/controllers/superAdmin"
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/validators"
	superAdminValidator "rplsite/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
)

func SetupSuperAdminRoutes(app *fiber.App) {
	userGroup := app.Group("/admin/users", middleware.JWTMiddleware, middleware.AdminOnly)

	userGroup.Get("/", validators.List(models.RoleAdmin, models.RoleEditor), superAdminController.UserList)
	userGroup.Post("/", superAdminValidator.CreateUser(), superAdminController.CreateUser)
	userGroup.Patch("/:id", superAdminValidator.UserID(), superAdminValidator.UpdateUser(), superAdminController.UpdateUser)
	userGroup.Delete("/:id", superAdminValidator.UserID(), superAdminController.DeleteUser)
}
