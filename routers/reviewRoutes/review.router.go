package reviewRoutes

import (
	reviewController "rplsite/controllers/reviews"
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/validators"
	reviewValidator "rplsite/validators/reviews"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app *fiber.App) {
	reviews := app.Group("/reviews")

	reviews.Post("/", reviewValidator.Submit(), reviewController.SubmitReview)
	reviews.Get("/", middleware.CachePage(middleware.Tags("reviews")), reviewController.GetPublicReviews)

	admin := app.Group("/admin/reviews", middleware.JWTMiddleware, middleware.Staff)

	admin.Get("/", validators.List(models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected), reviewController.AdminListReviews)
	admin.Patch("/:id/approve", reviewValidator.ReviewID(), reviewController.ApproveReview)
	admin.Patch("/:id/reject", reviewValidator.ReviewID(), reviewController.RejectReview)
	admin.Delete("/:id", reviewValidator.ReviewID(), reviewController.DeleteReview)
}
