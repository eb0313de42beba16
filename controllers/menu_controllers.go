package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-reservation/models"
	"restaurant-reservation/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems -> the menu, optionally narrowed to one category.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	query := mc.DB.Model(&models.MenuItem{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondDBError(c, err, "menu item not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, items)
}

// CreateMenuItem -> add an orderable item. Price is a whole currency unit,
// zero allowed.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		Price    *int64 `json:"price" binding:"required,gte=0"`
		Category string `json:"category" binding:"required"`
		Image    string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid category %q", req.Category))
		return
	}

	item := models.MenuItem{
		Title:     req.Title,
		Price:     *req.Price,
		Category:  req.Category,
		Image:     req.Image,
		Available: true,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondDBError(c, err, "menu item not found")
		return
	}

	utils.InfoLogger.Printf("New menu item created: %s (price=%d, category=%s)", item.Title, item.Price, item.Category)
	utils.RespondJSON(c, http.StatusCreated, item)
}

// UpdateMenuItem -> partial update; validates the same bounds as create.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "menu item not found")
		return
	}

	var req struct {
		Title     *string `json:"title"`
		Price     *int64  `json:"price"`
		Category  *string `json:"category"`
		Image     *string `json:"image"`
		Available *bool   `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("title must not be empty"))
			return
		}
		item.Title = *req.Title
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
			return
		}
		item.Price = *req.Price
	}
	if req.Category != nil {
		if !models.IsValidCategory(*req.Category) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid category %q", *req.Category))
			return
		}
		item.Category = *req.Category
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondDBError(c, err, "menu item not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, item)
}

// DeleteMenuItem -> remove an item unless order lines reference it; orders
// are history and must keep resolving their lines.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "menu item not found")
		return
	}

	var referenced int64
	if err := mc.DB.Model(&models.OrderItem{}).Where("menu_item_id = ?", item.ID).Count(&referenced).Error; err != nil {
		utils.RespondDBError(c, err, "menu item not found")
		return
	}
	if referenced > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("menu item is referenced by orders and cannot be deleted"))
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondDBError(c, err, "menu item not found")
		return
	}

	utils.InfoLogger.Printf("Menu item %d (%s) deleted", item.ID, item.Title)
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": item.ID})
}
