package routers

import (
	"rplsite/middleware"
	authRoutes "rplsite/routers/authRoutes"
	courseRoutes "rplsite/routers/courseRoutes"
	dashboardRoutes "rplsite/routers/dashboardRoutes"
	leadRoutes "rplsite/routers/leadRoutes"
	paymentRoutes "rplsite/routers/paymentRoutes"
	reviewRoutes "rplsite/routers/reviewRoutes"
	superAdminRoutes "rplsite/routers/superAdmin"

	"github.com/gofiber/fiber/v2"
)

// NewApp returns a fiber app with every route mounted behind the given
// global middleware
func NewApp(global ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		// request strings are read after the handler returns by async mail
		Immutable: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return middleware.JsonResponse(c, code, false, err.Error(), nil)
		},
	})
	for _, h := range global {
		app.Use(h)
	}
	SetupRoutes(app)
	return app
}

// SetupRoutes mounts the public and admin route groups
func SetupRoutes(app *fiber.App) {
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCatalogRoutes(app)
	courseRoutes.SetupAdminCatalogRoutes(app)
	leadRoutes.SetupLeadRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	dashboardRoutes.SetupDashboardRoutes(app)
	superAdminRoutes.SetupSuperAdminRoutes(app)
}
