package courseRoutes

import (
	controllers "rplsite/controllers/course"
	"rplsite/middleware"
	validators "rplsite/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes sets up the public catalog reads
func SetupCatalogRoutes(app *fiber.App) {
	catalogGroup := app.Group("/catalog")

	catalogGroup.Get("/sections", middleware.CachePage(middleware.Tags("sections", "courses")), controllers.GetSections)
	catalogGroup.Get("/sections/:link", validators.Link(), middleware.CachePage(sectionPageTags), controllers.GetSectionByLink)
	catalogGroup.Get("/courses/:link", validators.Link(), middleware.CachePage(coursePageTags), controllers.GetCourseByLink)
}

// a section page lists its courses and its own index
func sectionPageTags(c *fiber.Ctx) []string {
	return []string{"sections", "section:" + c.Params("link")}
}

// a course page embeds its section and its own index
func coursePageTags(c *fiber.Ctx) []string {
	tags := []string{"courses", "sections", "course:" + c.Params("link")}
	if parent, ok := c.Locals("sectionLink").(string); ok && parent != "" {
		tags = append(tags, "section:"+parent)
	}
	return tags
}
