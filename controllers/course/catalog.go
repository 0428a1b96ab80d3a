package controllers

import (
	"rplsite/database"
	"rplsite/middleware"
	"rplsite/revalidate"
	"rplsite/services/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

func catalogService() *catalog.Service {
	return catalog.NewService(database.Database.Db, database.Database.TxOptions, revalidate.Default)
}

// catalogError turns a catalog failure into the JSON result shown by the admin forms
func catalogError(c *fiber.Ctx, err error) error {
	var validationErr *catalog.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return middleware.ValidationErrorResponse(c, validationErr.Fields)
	case errors.Is(err, catalog.ErrSectionNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	case errors.Is(err, catalog.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, catalog.ErrSectionHasCourses):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Section still has courses! Move or delete them first.", nil)
	case errors.Is(err, catalog.ErrConflict):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An entry with this title already exists!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong, please try again!", nil)
	}
}
