package models

import "time"

const (
	OrderDraft     = "draft"
	OrderPlaced    = "placed"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	ReservationID *uint        `gorm:"index" json:"reservationId,omitempty"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	Items         []OrderItem  `gorm:"foreignKey:OrderID" json:"items"`
	Total         int64        `gorm:"not null" json:"total"`
	Status        string       `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CustomerName  string       `gorm:"type:varchar(255);not null" json:"customerName"`
	CustomerPhone string       `gorm:"type:varchar(50);not null" json:"customerPhone"`
	Notes         string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updatedAt"`
}

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderDraft, OrderPlaced, OrderPaid, OrderCancelled:
		return true
	}
	return false
}
