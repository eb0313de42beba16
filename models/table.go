package models

import "time"

const (
	LocationHall    = "hall"
	LocationVIP     = "vip"
	LocationOutdoor = "outdoor"
)

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Location  string    `gorm:"type:varchar(20);not null;default:'hall'" json:"location"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func IsValidLocation(location string) bool {
	switch location {
	case LocationHall, LocationVIP, LocationOutdoor:
		return true
	}
	return false
}
