package models

import (
	"time"

	"homestay/constants"
)

// CleaningTask công việc dọn phòng sau khi khách trả phòng
type CleaningTask struct {
	ID            uint                     `gorm:"primaryKey" json:"id"`
	ReservationID uint                     `gorm:"not null;index" json:"reservationId"`
	Reservation   *Reservation             `gorm:"foreignKey:ReservationID;constraint:OnDelete:RESTRICT" json:"reservation,omitempty"`
	UnitID        uint                     `gorm:"not null;index" json:"unitId"`
	Unit          *Unit                    `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Status        constants.CleaningStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AssignedToID  *uint                    `gorm:"index" json:"assignedToId"`
	AssignedTo    *User                    `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	AssignedAt    *time.Time               `json:"assignedAt"`
	StartedAt     *time.Time               `json:"startedAt"`
	CompletedAt   *time.Time               `json:"completedAt"`
	FailedAt      *time.Time               `json:"failedAt"`
	FailReason    string                   `gorm:"type:text" json:"failReason"`
	Notes         string                   `gorm:"type:text" json:"notes"`
	Photos        []CleaningPhoto          `gorm:"foreignKey:CleaningTaskID" json:"photos"`
	CreatedAt     time.Time                `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time                `gorm:"autoUpdateTime" json:"updatedAt"`
}

type CleaningPhoto struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CleaningTaskID uint      `gorm:"not null;index" json:"cleaningTaskId"`
	URL            string    `gorm:"size:500;not null" json:"url"`
	UploadedByID   *uint     `json:"uploadedById,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// IsAssignedTo kiểm tra công việc có được giao cho userID không
func (t *CleaningTask) IsAssignedTo(userID uint) bool {
	return t.AssignedToID != nil && *t.AssignedToID == userID
}
