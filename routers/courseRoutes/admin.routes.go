package courseRoutes

import (
	controllers "rplsite/controllers/course"
	"rplsite/middleware"
	validators "rplsite/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCatalogRoutes sets up section and course management routes
func SetupAdminCatalogRoutes(app *fiber.App) {
	sectionGroup := app.Group("/admin/sections", middleware.JWTMiddleware, middleware.Staff)

	// Section CRUD
	sectionGroup.Get("/", controllers.AdminListSections)
	sectionGroup.Post("/", validators.SectionForm(), controllers.AdminCreateSection)
	sectionGroup.Get("/:section_id", validators.SectionID(), controllers.AdminGetSection)
	sectionGroup.Put("/:section_id", validators.SectionID(), validators.SectionForm(), controllers.AdminUpdateSection)
	sectionGroup.Delete("/:section_id", validators.SectionID(), controllers.AdminDeleteSection)

	// Course Management
	sectionGroup.Get("/:section_id/courses", validators.SectionID(), controllers.AdminListCourses)
	sectionGroup.Post("/:section_id/courses", validators.SectionID(), validators.CourseForm(), controllers.AdminCreateCourse)
	sectionGroup.Get("/:section_id/courses/:course_id", validators.SectionID(), validators.CourseID(), controllers.AdminGetCourse)
	sectionGroup.Put("/:section_id/courses/:course_id", validators.SectionID(), validators.CourseID(), validators.CourseForm(), controllers.AdminUpdateCourse)
	sectionGroup.Delete("/:section_id/courses/:course_id", validators.SectionID(), validators.CourseID(), controllers.AdminDeleteCourse)
}
