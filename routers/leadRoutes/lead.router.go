package leadRoutes

import (
	leadController "rplsite/controllers/leads"
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/validators"
	leadValidator "rplsite/validators/leads"

	"github.com/gofiber/fiber/v2"
)

var (
	leadStatuses    = []string{models.LeadStatusNew, models.LeadStatusContacted, models.LeadStatusClosed}
	bookingStatuses = []string{models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled}
)

func SetupLeadRoutes(app *fiber.App) {
	leads := app.Group("/leads")

	leads.Post("/eligibility", leadValidator.Eligibility(), leadController.SubmitEligibility)
	leads.Post("/contact", leadValidator.Contact(), leadController.SubmitContact)
	leads.Post("/booking", leadValidator.Booking(), leadController.SubmitBooking)

	admin := app.Group("/admin/leads", middleware.JWTMiddleware, middleware.Staff)

	admin.Get("/eligibility", validators.List(leadStatuses...), leadController.AdminListEligibility)
	admin.Patch("/eligibility/:id", leadValidator.Status(leadStatuses...), leadController.AdminUpdateEligibility)
	admin.Get("/contacts", validators.List(leadStatuses...), leadController.AdminListContacts)
	admin.Patch("/contacts/:id", leadValidator.Status(leadStatuses...), leadController.AdminUpdateContact)
	admin.Get("/bookings", validators.List(bookingStatuses...), leadController.AdminListBookings)
	admin.Patch("/bookings/:id", leadValidator.Status(bookingStatuses...), leadController.AdminUpdateBooking)
}
