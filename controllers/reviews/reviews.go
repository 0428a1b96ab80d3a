package reviewController

import (
	"log"

	"rplsite/database"
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/revalidate"
	"rplsite/validators"
	reviewValidator "rplsite/validators/reviews"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var reviewsTarget = revalidate.Target{Tags: []string{"reviews"}, Paths: []string{"/"}}

// SubmitReview stores a review awaiting moderation
func SubmitReview(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReview").(*reviewValidator.SubmitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	review := models.Review{
		Name:    reqData.Name,
		Email:   reqData.Email,
		Rating:  reqData.Rating,
		Comment: reqData.Comment,
		Status:  models.ReviewStatusPending,
	}
	if reqData.CourseID != "" {
		if err := db.Where("id = ?", reqData.CourseID).First(&models.Course{}).Error; err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"courseId": "Course not found!"})
		}
		review.CourseID = &reqData.CourseID
	}

	if err := db.Create(&review).Error; err != nil {
		log.Printf("[REVIEWS] Error saving review: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully! Pending approval.", review)
}

// GetPublicReviews returns approved reviews, optionally for one course
func GetPublicReviews(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	courseID := c.Query("courseId")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := database.Database.Db.Model(&models.Review{}).Where("status = ?", models.ReviewStatusApproved)
	if courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	// visitor emails stay private
	for i := range reviews {
		reviews[i].Email = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched!", fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminListReviews lists reviews of every status for moderation
func AdminListReviews(c *fiber.Ctx) error {
	reqData, ok := c.Locals("list").(*validators.ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	query := database.Database.Db.Model(&models.Review{})
	if reqData.Status != "" {
		query = query.Where("status = ?", reqData.Status)
	}

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.
		Order("created_at DESC").
		Offset(reqData.Offset()).
		Limit(reqData.Limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched!", fiber.Map{
		"reviews":    reviews,
		"pagination": reqData.Pagination(total),
	})
}

func ApproveReview(c *fiber.Ctx) error {
	return moderate(c, models.ReviewStatusApproved)
}

func RejectReview(c *fiber.Ctx) error {
	return moderate(c, models.ReviewStatusRejected)
}

func moderate(c *fiber.Ctx, status string) error {
	review, err := findReview(c)
	if err != nil {
		return err
	}
	if review == nil {
		return nil
	}

	wasPublic := review.Status == models.ReviewStatusApproved
	if err := database.Database.Db.Model(review).Update("status", status).Error; err != nil {
		log.Printf("[REVIEWS] Error moderating review %s: %v", review.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}
	review.Status = status

	if wasPublic || status == models.ReviewStatusApproved {
		revalidate.Notify(c.UserContext(), revalidate.Default, reviewsTarget)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review updated successfully!", review)
}

func DeleteReview(c *fiber.Ctx) error {
	review, err := findReview(c)
	if err != nil {
		return err
	}
	if review == nil {
		return nil
	}

	if err := database.Database.Db.Delete(review).Error; err != nil {
		log.Printf("[REVIEWS] Error deleting review %s: %v", review.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	if review.Status == models.ReviewStatusApproved {
		revalidate.Notify(c.UserContext(), revalidate.Default, reviewsTarget)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}

// findReview loads the review named by the route. A nil review means the
// response has already been written.
func findReview(c *fiber.Ctx) (*models.Review, error) {
	var review models.Review
	err := database.Database.Db.Where("id = ?", c.Locals("reviewID")).First(&review).Error
	if err == gorm.ErrRecordNotFound {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}
	if err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch review!", nil)
	}
	return &review, nil
}
