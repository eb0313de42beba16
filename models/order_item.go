package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null" json:"orderId"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      Order    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menuItem"`
	Qty        int      `gorm:"not null" json:"qty"`
	// Price is the unit price captured when the order was placed, so later
	// menu edits do not rewrite order history.
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
