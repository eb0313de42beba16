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

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder places an order for a list of (menu item, qty) lines. The
// total is always computed from the stored menu prices; anything the client
// sends for prices is ignored. Qty is capped at 1000 per line so the total
// stays far from int64 range. One unresolvable line rejects the whole
// order, nothing is written.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type lineReq struct {
		Item uint `json:"item" binding:"required"`
		Qty  int  `json:"qty" binding:"required,min=1,max=1000"`
	}
	var req struct {
		Reservation   *uint     `json:"reservation"`
		Items         []lineReq `json:"items" binding:"required,min=1,dive"`
		CustomerName  string    `json:"customerName" binding:"required"`
		CustomerPhone string    `json:"customerPhone" binding:"required"`
		Notes         string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order := models.Order{
		ReservationID: req.Reservation,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		Status:        models.OrderPlaced,
	}

	var badRequest error
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if req.Reservation != nil {
			var reservation models.Reservation
			if err := tx.First(&reservation, *req.Reservation).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					badRequest = fmt.Errorf("reservation %d not found", *req.Reservation)
					return badRequest
				}
				return err
			}
		}

		var total int64
		for _, line := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, line.Item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					badRequest = fmt.Errorf("menu item %d not found", line.Item)
					return badRequest
				}
				return err
			}

			total += menuItem.Price * int64(line.Qty)
			order.Items = append(order.Items, models.OrderItem{
				MenuItemID: menuItem.ID,
				Qty:        line.Qty,
				Price:      menuItem.Price,
			})
		}

		order.Total = total
		return tx.Create(&order).Error
	})
	if err != nil {
		if badRequest != nil {
			utils.RespondError(c, http.StatusBadRequest, badRequest)
			return
		}
		utils.RespondDBError(c, err, "order not found")
		return
	}

	var created models.Order
	if err := oc.DB.Preload("Items.MenuItem").Preload("Reservation.Table").First(&created, order.ID).Error; err != nil {
		utils.RespondDBError(c, err, "order not found")
		return
	}

	utils.InfoLogger.Printf("Order %d placed: %d items, total=%d", created.ID, len(created.Items), created.Total)
	utils.RespondJSON(c, http.StatusCreated, created)
}

// GetAllOrders -> orders with their lines, filterable by reservation and
// exact customer phone.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Model(&models.Order{}).Preload("Items.MenuItem").Preload("Reservation.Table")

	if reservation := c.Query("reservation"); reservation != "" {
		query = query.Where("reservation_id = ?", reservation)
	}
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("customer_phone = ?", phone)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondDBError(c, err, "order not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, orders)
}

// GetOrderByID -> one order with lines resolved.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items.MenuItem").Preload("Reservation.Table").First(&order, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "order not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, order)
}

// UpdateOrderStatus moves an order to any of the four statuses; transitions
// are deliberately unconstrained.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "order not found")
		return
	}

	order.Status = req.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondDBError(c, err, "order not found")
		return
	}
	if err := oc.DB.Preload("Items.MenuItem").First(&order, order.ID).Error; err != nil {
		utils.RespondDBError(c, err, "order not found")
		return
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, order)
}

// DeleteOrder hard-deletes an order and its lines; admin only.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, c.Param("id")).Error; err != nil {
		utils.RespondDBError(c, err, "order not found")
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		utils.RespondDBError(c, err, "order not found")
		return
	}

	utils.InfoLogger.Printf("Order %d deleted", order.ID)
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": order.ID})
}
