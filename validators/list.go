package validators

import (
	"strings"

	"rplsite/middleware"

	"github.com/gofiber/fiber/v2"
)

// ListQuery carries the pagination and filter query of admin lists
type ListQuery struct {
	Page   int    `json:"page" query:"page" validate:"min=1"`
	Limit  int    `json:"limit" query:"limit" validate:"min=1,max=100"`
	Status string `json:"status" query:"status"`
}

// Offset is the number of rows skipped before the current page
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination is the pagination block returned with every list
func (q *ListQuery) Pagination(total int64) fiber.Map {
	return fiber.Map{
		"total": total,
		"page":  q.Page,
		"limit": q.Limit,
	}
}

// List validates the page, limit and status query of a list endpoint.
// Allowed statuses, when given, restrict the status filter.
func List(statuses ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &ListQuery{Page: 1, Limit: 20}
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))

		errors := Struct(reqData)
		if reqData.Status != "" && len(statuses) > 0 && !contains(statuses, reqData.Status) {
			if errors == nil {
				errors = map[string]string{}
			}
			errors["status"] = "Status must be one of " + strings.Join(statuses, ", ") + "!"
		}
		if errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("list", reqData)
		return c.Next()
	}
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
