package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-reservation/middlewares"
	"restaurant-reservation/models"
	"restaurant-reservation/utils"
)

var errSlotTaken = errors.New("table already booked at this time")

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// CreateReservation books a table for an exact instant. The pre-check gives
// callers a clean conflict message; the unique index on
// (table_id, time, active) is what actually guarantees at most one active
// reservation per slot when two requests race.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		Table  uint      `json:"table" binding:"required"`
		Name   string    `json:"name" binding:"required"`
		Phone  string    `json:"phone" binding:"required"`
		Guests int       `json:"guests" binding:"required,min=1"`
		Time   time.Time `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := rc.DB.First(&table, req.Table).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	reservation := models.Reservation{
		TableID: req.Table,
		Name:    req.Name,
		Phone:   req.Phone,
		Guests:  req.Guests,
		Time:    req.Time,
		Status:  models.ReservationPending,
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&models.Reservation{}).
			Where("table_id = ? AND time = ? AND status IN ?", req.Table, req.Time,
				[]string{models.ReservationPending, models.ReservationConfirmed}).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return errSlotTaken
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errSlotTaken)
			return
		}
		utils.RespondDBError(c, err, "reservation not found")
		return
	}

	reservation.Table = table
	utils.InfoLogger.Printf("Reservation %d created: table=%d time=%s guests=%d",
		reservation.ID, reservation.TableID, reservation.Time.Format(time.RFC3339), reservation.Guests)
	utils.RespondJSON(c, http.StatusCreated, reservation)
}

// GetAllReservations filters by day, status and case-insensitive substring
// on phone/name. The date filter covers the half-open range
// [date 00:00, date+1 00:00).
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	query := rc.DB.Model(&models.Reservation{}).Preload("Table")

	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date))
			return
		}
		query = query.Where("time >= ? AND time < ?", day, day.AddDate(0, 0, 1))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("LOWER(phone) LIKE ?", "%"+strings.ToLower(phone)+"%")
	}
	if name := c.Query("name"); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondDBError(c, err, "reservation not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservations)
}

// UpdateReservationStatus sets any of the three statuses; no transition
// table is enforced on purpose. Re-activating a cancelled reservation into
// a slot someone else took meanwhile trips the unique index.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.IsValidReservationStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", req.Status))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "reservation not found")
		return
	}

	reservation.Status = req.Status
	if err := rc.DB.Save(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errSlotTaken)
			return
		}
		utils.RespondDBError(c, err, "reservation not found")
		return
	}
	if err := rc.DB.Preload("Table").First(&reservation, reservation.ID).Error; err != nil {
		utils.RespondDBError(c, err, "reservation not found")
		return
	}

	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ID, reservation.Status)
	utils.RespondJSON(c, http.StatusOK, reservation)
}

// CancelReservation sets status=cancelled unconditionally. Admins may
// cancel anything; anyone else must present the phone the reservation was
// made with.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	var reservation models.Reservation
	if err := rc.DB.First(&reservation, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "reservation not found")
		return
	}

	user, authed := middlewares.CurrentUser(c)
	if !authed || user.Role != models.RoleAdmin {
		phone := c.Query("phone")
		if phone == "" {
			var body struct {
				Phone string `json:"phone"`
			}
			if err := c.ShouldBindJSON(&body); err == nil {
				phone = body.Phone
			}
		}
		if !strings.EqualFold(phone, reservation.Phone) {
			utils.RespondError(c, http.StatusForbidden, errors.New("only the reservation owner or an admin may cancel"))
			return
		}
	}

	reservation.Status = models.ReservationCancelled
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondDBError(c, err, "reservation not found")
		return
	}
	if err := rc.DB.Preload("Table").First(&reservation, reservation.ID).Error; err != nil {
		utils.RespondDBError(c, err, "reservation not found")
		return
	}

	utils.InfoLogger.Printf("Reservation %d cancelled", reservation.ID)
	utils.RespondJSON(c, http.StatusOK, reservation)
}

// DeleteReservation hard-deletes; admin only.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	var reservation models.Reservation
	if err := rc.DB.First(&reservation, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "reservation not found")
		return
	}

	if err := rc.DB.Delete(&reservation).Error; err != nil {
		utils.RespondDBError(c, err, "reservation not found")
		return
	}

	utils.InfoLogger.Printf("Reservation %d deleted", reservation.ID)
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": reservation.ID})
}
