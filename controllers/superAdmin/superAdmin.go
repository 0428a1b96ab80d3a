package superAdminController

import (
	"log"

	"rplsite/config"
	"rplsite/database"
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/validators"
	superAdminValidator "rplsite/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserList lists back-office accounts, optionally filtered by role
func UserList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("list").(*validators.ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	query := database.Database.Db.Model(&models.User{})
	if reqData.Status != "" {
		query = query.Where("role = ?", reqData.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	var users []models.User
	if err := query.
		Order("created_at").
		Offset(reqData.Offset()).
		Limit(reqData.Limit).
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", fiber.Map{
		"users":      users,
		"pagination": reqData.Pagination(total),
	})
}

// CreateUser adds an ADMIN or EDITOR account
func CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*superAdminValidator.CreateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     reqData.Role,
	}
	if err := db.Create(&newUser).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully.", newUser)
}

// UpdateUser changes the name, role or block state of an account
func UpdateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserUpdate").(*superAdminValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	targetID := c.Locals("targetUserID").(string)
	selfID, _ := c.Locals("userId").(string)

	var user models.User
	if err := database.Database.Db.Where("id = ?", targetID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	// an admin cannot lock themselves out
	if user.ID == selfID && ((reqData.IsBlocked != nil && *reqData.IsBlocked) || (reqData.Role != nil && *reqData.Role != models.RoleAdmin)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot block or demote your own account!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Role != nil {
		updates["role"] = *reqData.Role
	}
	if reqData.IsBlocked != nil {
		updates["is_blocked"] = *reqData.IsBlocked
	}

	if err := database.Database.Db.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Error updating user %s: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", user)
}

// DeleteUser removes an account other than the caller's own
func DeleteUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(string)
	if selfID, _ := c.Locals("userId").(string); selfID == targetID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot delete your own account!", nil)
	}

	result := database.Database.Db.Where("id = ?", targetID).Delete(&models.User{})
	if result.Error != nil {
		log.Printf("Error deleting user %s: %v", targetID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", nil)
}
