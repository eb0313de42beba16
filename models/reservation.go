package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation books one table for one exact instant. The Active column
// mirrors the status: true while pending/confirmed, NULL once cancelled.
// Together with the composite unique index this makes a second active
// reservation for the same (table, time) impossible at the storage layer;
// cancelled rows carry NULL and never collide.
type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TableID   uint      `gorm:"not null;uniqueIndex:uniq_active_slot" json:"tableId"`
	Table     Table     `gorm:"foreignKey:TableID" json:"table"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(50);not null" json:"phone"`
	Guests    int       `gorm:"not null" json:"guests"`
	Time      time.Time `gorm:"not null;uniqueIndex:uniq_active_slot" json:"time"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Active    *bool     `gorm:"uniqueIndex:uniq_active_slot" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (r *Reservation) IsActive() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// BeforeSave keeps the Active index column in sync with the status so
// controllers never have to manage it directly.
func (r *Reservation) BeforeSave(tx *gorm.DB) error {
	if r.IsActive() {
		active := true
		r.Active = &active
	} else {
		r.Active = nil
	}
	return nil
}

func IsValidReservationStatus(status string) bool {
	switch status {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}
