package models

import (
	"time"

	"homestay/constants"
	apperrors "homestay/errors"

	"gorm.io/gorm"
)

// DepositEvent một dòng trong sổ cọc, chỉ được thêm mới
type DepositEvent struct {
	ID            uint                       `gorm:"primaryKey" json:"id"`
	ReservationID uint                       `gorm:"not null;index" json:"reservationId"`
	Type          constants.DepositEventType `gorm:"type:varchar(20);not null" json:"type"`
	Amount        int64                      `gorm:"not null;default:0" json:"amount"`
	Method        string                     `gorm:"size:50" json:"method,omitempty"`
	TxnID         string                     `gorm:"size:100" json:"txnId,omitempty"`
	Reason        string                     `gorm:"type:text" json:"reason,omitempty"`
	EvidenceURL   string                     `gorm:"size:500" json:"evidenceUrl,omitempty"`
	StatusAfter   constants.DepositStatus    `gorm:"type:varchar(30);not null" json:"statusAfter"`
	ActorID       *uint                      `gorm:"index" json:"actorId,omitempty"`
	Actor         *User                      `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	CreatedAt     time.Time                  `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (e *DepositEvent) BeforeUpdate(tx *gorm.DB) error {
	return apperrors.ErrEventImmutable
}

func (e *DepositEvent) BeforeDelete(tx *gorm.DB) error {
	return apperrors.ErrEventImmutable
}
