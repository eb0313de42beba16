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

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> every table, unfiltered.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Find(&tables).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, tables)
}

// GetTableByID -> detail of one table.
func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

// CreateTable -> add a seating unit. Name is globally unique.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Capacity int    `json:"capacity" binding:"required,min=1"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		Name:     req.Name,
		Capacity: req.Capacity,
		Location: models.LocationHall,
	}
	if req.Location != "" {
		if !models.IsValidLocation(req.Location) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid location %q", req.Location))
			return
		}
		table.Location = req.Location
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, fmt.Errorf("a table named %q already exists", req.Name))
			return
		}
		utils.RespondDBError(c, err, "table not found")
		return
	}

	utils.InfoLogger.Printf("New table created: %s (capacity=%d, location=%s)", table.Name, table.Capacity, table.Location)
	utils.RespondJSON(c, http.StatusCreated, table)
}

// UpdateTable -> partial update of name/capacity/location.
func (tc *TableController) UpdateTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Capacity *int    `json:"capacity"`
		Location *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("name must not be empty"))
			return
		}
		table.Name = *req.Name
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be at least 1"))
			return
		}
		table.Capacity = *req.Capacity
	}
	if req.Location != nil {
		if !models.IsValidLocation(*req.Location) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid location %q", *req.Location))
			return
		}
		table.Location = *req.Location
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, fmt.Errorf("a table named %q already exists", table.Name))
			return
		}
		utils.RespondDBError(c, err, "table not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

// DeleteTable -> remove a table unless active reservations still point at it.
func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	var active int64
	err := tc.DB.Model(&models.Reservation{}).
		Where("table_id = ? AND status IN ?", table.ID,
			[]string{models.ReservationPending, models.ReservationConfirmed}).
		Count(&active).Error
	if err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}
	if active > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("table has active reservations and cannot be deleted"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	utils.InfoLogger.Printf("Table %d (%s) deleted", table.ID, table.Name)
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": table.ID})
}
