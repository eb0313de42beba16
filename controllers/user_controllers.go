package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-reservation/models"
	"restaurant-reservation/utils"
)

// UserController is the admin surface over accounts. The password hash
// never serializes (json:"-" on the model).
type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetAllUsers -> filter by name (first or last), email and phone, all
// case-insensitive substring matches.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	query := uc.DB.Model(&models.User{})

	if name := c.Query("name"); name != "" {
		pattern := "%" + strings.ToLower(name) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern)
	}
	if email := c.Query("email"); email != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(email)+"%")
	}
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("LOWER(phone) LIKE ?", "%"+strings.ToLower(phone)+"%")
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		utils.RespondDBError(c, err, "user not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, users)
}

// UpdateUserRole -> promote or demote an account.
func (uc *UserController) UpdateUserRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.IsValidRole(req.Role) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid role %q", req.Role))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "user not found")
		return
	}

	user.Role = req.Role
	if err := uc.DB.Save(&user).Error; err != nil {
		utils.RespondDBError(c, err, "user not found")
		return
	}

	utils.InfoLogger.Printf("User %d role changed to %s", user.ID, user.Role)
	utils.RespondJSON(c, http.StatusOK, user)
}

// DeleteUser -> hard delete of an account.
func (uc *UserController) DeleteUser(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "user not found")
		return
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		utils.RespondDBError(c, err, "user not found")
		return
	}

	utils.InfoLogger.Printf("User %d (%s) deleted", user.ID, user.Email)
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": user.ID})
}
