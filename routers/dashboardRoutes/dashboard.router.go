package dashboardRoutes

import (
	dashboardController "rplsite/controllers/dashboard"
	"rplsite/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/admin/dashboard", middleware.JWTMiddleware, middleware.Staff, dashboardController.GetDashboard)
}
