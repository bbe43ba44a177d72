package models

import "time"

// Location một cơ sở homestay, gồm nhiều phòng
type Location struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Address     string    `gorm:"size:500" json:"address"`
	City        string    `gorm:"size:100;index" json:"city"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Units       []Unit    `gorm:"foreignKey:LocationID" json:"units,omitempty"`
}
