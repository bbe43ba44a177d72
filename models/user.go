package models

import (
	"time"

	"homestay/constants"
)

type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Email       string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	PhoneNumber string         `gorm:"type:varchar(20)" json:"phoneNumber"`
	Role        constants.Role `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive    bool           `gorm:"not null;default:true" json:"isActive"`
}
