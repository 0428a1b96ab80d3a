package paymentController

import (
	"log"
	"time"

	"rplsite/database"
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/validators"
	paymentValidator "rplsite/validators/payments"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePayment records a payment against a course
func CreatePayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPayment").(*paymentValidator.CreateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ?", reqData.CourseID).First(&models.Course{}).Error; err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"courseId": "Course not found!"})
	}

	// Check if the reference was already recorded (duplicate transaction)
	if reqData.Reference != "" {
		var existing models.Payment
		if err := db.Where("reference = ?", reqData.Reference).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Payment already recorded!", nil)
		}
	}

	payment := models.Payment{
		PayerName:   reqData.PayerName,
		PayerEmail:  reqData.PayerEmail,
		CourseID:    reqData.CourseID,
		AmountCents: reqData.AmountCents,
		Currency:    reqData.Currency,
		Method:      reqData.Method,
		Reference:   reqData.Reference,
		Status:      reqData.Status,
	}
	if payment.Status == models.PaymentStatusPaid {
		now := time.Now()
		payment.PaidAt = &now
	}

	if err := db.Create(&payment).Error; err != nil {
		log.Printf("[PAYMENTS] Error saving payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment recorded successfully!", payment)
}

// ListPayments returns payments newest first, optionally by status
func ListPayments(c *fiber.Ctx) error {
	reqData, ok := c.Locals("list").(*validators.ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	query := database.Database.Db.Model(&models.Payment{})
	if reqData.Status != "" {
		query = query.Where("status = ?", reqData.Status)
	}

	var total int64
	query.Count(&total)

	var payments []models.Payment
	if err := query.
		Order("created_at DESC").
		Offset(reqData.Offset()).
		Limit(reqData.Limit).
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched!", fiber.Map{
		"payments":   payments,
		"pagination": reqData.Pagination(total),
	})
}

// UpdatePaymentStatus moves a payment to a new status. Only paid payments
// can be refunded.
func UpdatePaymentStatus(c *fiber.Ctx) error {
	id := c.Locals("paymentID").(string)
	status := c.Locals("status").(string)

	db := database.Database.Db

	var payment models.Payment
	if err := db.Where("id = ?", id).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payment!", nil)
	}

	if status == models.PaymentStatusRefunded && payment.Status != models.PaymentStatusPaid {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only paid payments can be refunded!", nil)
	}

	payment.Status = status
	if status == models.PaymentStatusPaid && payment.PaidAt == nil {
		now := time.Now()
		payment.PaidAt = &now
	}

	if err := db.Save(&payment).Error; err != nil {
		log.Printf("[PAYMENTS] Error updating payment %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment updated successfully!", payment)
}
