package dashboardController

import (
	"log"
	"time"

	"rplsite/database"
	"rplsite/middleware"
	"rplsite/services/analytics"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns the admin dashboard counters
func GetDashboard(c *fiber.Ctx) error {
	stats, err := analytics.Collect(c.UserContext(), database.Database.Db, time.Now())
	if err != nil {
		log.Printf("[DASHBOARD] %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load dashboard!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched!", stats)
}
