package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName string    `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName  string    `gorm:"type:varchar(255);not null" json:"lastName"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
