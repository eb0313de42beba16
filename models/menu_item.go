package models

import "time"

// Menu categories as stored by the original restaurant:
// kebab, stew, appetizer and drink.
const (
	CategoryKebab     = "کباب"
	CategoryStew      = "خورش"
	CategoryAppetizer = "پیش‌غذا"
	CategoryDrink     = "نوشیدنی"
)

type MenuItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Price     int64     `gorm:"not null" json:"price"`
	Category  string    `gorm:"type:varchar(50);not null" json:"category"`
	Image     string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	Available bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func IsValidCategory(category string) bool {
	switch category {
	case CategoryKebab, CategoryStew, CategoryAppetizer, CategoryDrink:
		return true
	}
	return false
}
