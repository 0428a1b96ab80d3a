package leadController

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"rplsite/database"
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/utils"
	"rplsite/validators"
	leadValidator "rplsite/validators/leads"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmitEligibility records an eligibility check and tells the visitor the result
func SubmitEligibility(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEligibility").(*leadValidator.EligibilityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", reqData.CourseID).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.ValidationErrorResponse(c, map[string]string{"courseId": "Course not found!"})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	answers, err := json.Marshal(reqData.Answers)
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"answers": "Answers must be a JSON object!"})
	}

	check := models.EligibilityCheck{
		Name:              reqData.Name,
		Email:             reqData.Email,
		Phone:             reqData.Phone,
		YearsOfExperience: reqData.YearsOfExperience,
		Answers:           datatypes.JSON(answers),
		Status:            models.LeadStatusNew,
	}
	check.Evaluate(&course)

	if err := db.Create(&check).Error; err != nil {
		log.Printf("[LEADS] Error saving eligibility check: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit eligibility check!", nil)
	}

	go notify("eligibility check", check.Email, check.Name, []utils.Field{
		{Label: "Name", Value: check.Name},
		{Label: "Email", Value: check.Email},
		{Label: "Phone", Value: check.Phone},
		{Label: "Course", Value: course.Title},
		{Label: "Experience", Value: strconv.Itoa(check.YearsOfExperience) + " years"},
		{Label: "Eligible", Value: strconv.FormatBool(check.IsEligible)},
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Eligibility check submitted successfully!", fiber.Map{
		"isEligible":         check.IsEligible,
		"minExperienceYears": course.MinExperienceYears,
		"check":              check,
	})
}

// SubmitContact records a contact form submission
func SubmitContact(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedContact").(*leadValidator.ContactRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	contact := models.ContactResponse{
		Name:    reqData.Name,
		Email:   reqData.Email,
		Phone:   reqData.Phone,
		Message: reqData.Message,
		Source:  reqData.Source,
		Status:  models.LeadStatusNew,
	}
	if err := database.Database.Db.Create(&contact).Error; err != nil {
		log.Printf("[LEADS] Error saving contact response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit your message!", nil)
	}

	go notify("contact request", contact.Email, contact.Name, []utils.Field{
		{Label: "Name", Value: contact.Name},
		{Label: "Email", Value: contact.Email},
		{Label: "Phone", Value: contact.Phone},
		{Label: "Page", Value: contact.Source},
		{Label: "Message", Value: contact.Message},
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent successfully!", contact)
}

// SubmitBooking records a consultation booking request
func SubmitBooking(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBooking").(*leadValidator.BookingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	booking := models.Booking{
		Name:          reqData.Name,
		Email:         reqData.Email,
		Phone:         reqData.Phone,
		PreferredDate: reqData.PreferredDate,
		Notes:         reqData.Notes,
		Status:        models.BookingStatusPending,
	}
	if err := database.Database.Db.Create(&booking).Error; err != nil {
		log.Printf("[LEADS] Error saving booking: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to book your consultation!", nil)
	}

	go notify("consultation booking", booking.Email, booking.Name, []utils.Field{
		{Label: "Name", Value: booking.Name},
		{Label: "Email", Value: booking.Email},
		{Label: "Phone", Value: booking.Phone},
		{Label: "Preferred date", Value: booking.PreferredDate.Format("Mon 02 Jan 2006 15:04")},
		{Label: "Notes", Value: booking.Notes},
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Consultation booked successfully!", booking)
}

func notify(kind, email, name string, fields []utils.Field) {
	utils.SendLeadNotification(kind, fields)
	utils.SendLeadAcknowledgement(email, name, kind)
}

// ============ Admin ============

func AdminListEligibility(c *fiber.Ctx) error {
	return listLeads[models.EligibilityCheck](c, "checks", func(db *gorm.DB) *gorm.DB {
		return db.Preload("Course")
	})
}

func AdminListContacts(c *fiber.Ctx) error {
	return listLeads[models.ContactResponse](c, "contacts", nil)
}

func AdminListBookings(c *fiber.Ctx) error {
	return listLeads[models.Booking](c, "bookings", nil)
}

func AdminUpdateEligibility(c *fiber.Ctx) error {
	return updateStatus[models.EligibilityCheck](c, "Eligibility check")
}

func AdminUpdateContact(c *fiber.Ctx) error {
	return updateStatus[models.ContactResponse](c, "Contact response")
}

func AdminUpdateBooking(c *fiber.Ctx) error {
	return updateStatus[models.Booking](c, "Booking")
}

// listLeads pages through one lead table, newest first
func listLeads[T any](c *fiber.Ctx, key string, preload func(*gorm.DB) *gorm.DB) error {
	reqData, ok := c.Locals("list").(*validators.ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	query := database.Database.Db.Model(new(T))
	if reqData.Status != "" {
		query = query.Where("status = ?", reqData.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch "+key+"!", nil)
	}

	if preload != nil {
		query = preload(query)
	}
	var rows []T
	if err := query.
		Order("created_at DESC").
		Offset(reqData.Offset()).
		Limit(reqData.Limit).
		Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch "+key+"!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leads fetched!", fiber.Map{
		key:          rows,
		"pagination": reqData.Pagination(total),
	})
}

func updateStatus[T any](c *fiber.Ctx, label string) error {
	id := c.Locals("leadID").(string)
	status := c.Locals("status").(string)

	db := database.Database.Db
	result := db.Model(new(T)).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		log.Printf("[LEADS] Error updating %s %s: %v", label, id, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update status!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, fmt.Sprintf("%s not found!", label), nil)
	}

	row := new(T)
	if err := db.Where("id = ?", id).First(row).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch updated entry!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, label+" updated successfully!", row)
}
