package paymentValidator

import (
	"strings"

	"rplsite/middleware"
	"rplsite/models"
	"rplsite/validators"

	"github.com/gofiber/fiber/v2"
)

// CreateRequest records a payment received outside the site
type CreateRequest struct {
	PayerName   string `json:"payerName" validate:"required,min=2,max=100"`
	PayerEmail  string `json:"payerEmail" validate:"required,email"`
	CourseID    string `json:"courseId" validate:"required"`
	AmountCents int64  `json:"amountCents" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"len=3,alpha"`
	Method      string `json:"method" validate:"required,oneof=CARD BANK_TRANSFER PAYPAL CASH"`
	Reference   string `json:"reference" validate:"max=100"`
	Status      string `json:"status" validate:"oneof=PENDING PAID REFUNDED FAILED"`
}

func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.PayerName = strings.TrimSpace(reqData.PayerName)
		reqData.PayerEmail = strings.ToLower(strings.TrimSpace(reqData.PayerEmail))
		reqData.CourseID = strings.TrimSpace(reqData.CourseID)
		reqData.Currency = strings.ToUpper(strings.TrimSpace(reqData.Currency))
		if reqData.Currency == "" {
			reqData.Currency = "AUD"
		}
		reqData.Method = strings.ToUpper(strings.TrimSpace(reqData.Method))
		reqData.Reference = strings.TrimSpace(reqData.Reference)
		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))
		if reqData.Status == "" {
			reqData.Status = models.PaymentStatusPending
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

// UpdateStatus validates a payment status change
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Params("id"))
		if id == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment ID is required!", nil)
		}

		reqData := new(struct {
			Status string `json:"status" validate:"required,oneof=PENDING PAID REFUNDED FAILED"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("paymentID", id)
		c.Locals("status", reqData.Status)
		return c.Next()
	}
}
