package models

import "time"

type Guest struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	FullName     string        `gorm:"size:255;not null" json:"fullName"`
	Email        *string       `gorm:"size:255;uniqueIndex" json:"email"`
	PhoneNumber  string        `gorm:"type:varchar(20);index" json:"phoneNumber"`
	IDNumber     string        `gorm:"size:50" json:"idNumber"`
	Nationality  string        `gorm:"size:100" json:"nationality"`
	Notes        string        `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	Reservations []Reservation `gorm:"foreignKey:GuestID" json:"reservations,omitempty"`
}
