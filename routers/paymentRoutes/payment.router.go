package paymentRoutes

import (
	paymentController "rplsite/controllers/payments"
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/validators"
	paymentValidator "rplsite/validators/payments"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	payments := app.Group("/admin/payments", middleware.JWTMiddleware, middleware.AdminOnly)

	payments.Get("/", validators.List(models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusRefunded, models.PaymentStatusFailed), paymentController.ListPayments)
	payments.Post("/", paymentValidator.Create(), paymentController.CreatePayment)
	payments.Patch("/:id/status", paymentValidator.UpdateStatus(), paymentController.UpdatePaymentStatus)
}
