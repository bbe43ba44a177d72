package models

import (
	"time"

	"github.com/lib/pq"
)

// Unit phòng cho thuê thuộc một cơ sở
type Unit struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	LocationID  uint           `gorm:"not null;index" json:"locationId"`
	Location    *Location      `gorm:"foreignKey:LocationID;constraint:OnDelete:RESTRICT" json:"location,omitempty"`
	Type        string         `gorm:"size:50" json:"type"`
	Capacity    int            `gorm:"not null;default:1" json:"capacity"`
	BasePrice   int64          `gorm:"not null;default:0" json:"basePrice"`
	Amenities   pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Description string         `gorm:"type:text" json:"description"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}
