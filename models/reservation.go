package models

import (
	"fmt"
	"strings"
	"time"

	"homestay/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reservation struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Code        string                      `gorm:"size:30;uniqueIndex;not null" json:"code"`
	UnitID      uint                        `gorm:"not null;index" json:"unitId"`
	Unit        *Unit                       `gorm:"foreignKey:UnitID;constraint:OnDelete:RESTRICT" json:"unit,omitempty"`
	GuestID     uint                        `gorm:"not null;index" json:"guestId"`
	Guest       *Guest                      `gorm:"foreignKey:GuestID;constraint:OnDelete:RESTRICT" json:"guest,omitempty"`
	CreatedByID *uint                       `json:"createdById,omitempty"`
	CheckIn     time.Time                   `gorm:"not null;index" json:"checkIn"`
	CheckOut    time.Time                   `gorm:"not null;index" json:"checkOut"`
	Status      constants.ReservationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount int64                       `gorm:"not null;default:0" json:"totalAmount"`
	CleaningFee int64                       `gorm:"not null;default:0" json:"cleaningFee"`
	Notes       string                      `gorm:"type:text" json:"notes"`

	// Tiền cọc
	DepositRequired    bool                    `gorm:"not null;default:false" json:"depositRequired"`
	DepositAmount      int64                   `gorm:"not null;default:0" json:"depositAmount"`
	DepositStatus      constants.DepositStatus `gorm:"type:varchar(30);not null;index" json:"depositStatus"`
	DepositMethod      string                  `gorm:"size:50" json:"depositMethod"`
	DepositTxnID       string                  `gorm:"size:100" json:"depositTxnId"`
	DepositPaidAt      *time.Time              `json:"depositPaidAt"`
	DepositEvidenceURL string                  `gorm:"size:500" json:"depositEvidenceUrl"`
	DepositRefundAmt   int64                   `gorm:"not null;default:0" json:"depositRefundAmt"`
	DepositForfeitAmt  int64                   `gorm:"not null;default:0" json:"depositForfeitAmt"`

	CheckedInAt  *time.Time `json:"checkedInAt"`
	CheckedOutAt *time.Time `json:"checkedOutAt"`
	CanceledAt   *time.Time `json:"canceledAt"`
	CancelReason string     `gorm:"type:text" json:"cancelReason"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	DepositEvents []DepositEvent `gorm:"foreignKey:ReservationID" json:"depositEvents,omitempty"`
}

// NewReservationCode sinh mã đơn dạng RSV240115A1B2C3
func NewReservationCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("RSV%s%s", now.Format("060102"), suffix)
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.Code == "" {
		r.Code = NewReservationCode(time.Now())
	}
	if r.DepositStatus == "" {
		r.DepositStatus = constants.DepositNotRequired
	}
	return nil
}

// Nights số đêm lưu trú, làm tròn lên
func (r *Reservation) Nights() int {
	d := r.CheckOut.Sub(r.CheckIn)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// DepositBalance phần tiền cọc còn lại chưa hoàn hoặc giữ lại
func (r *Reservation) DepositBalance() int64 {
	return r.DepositAmount - r.DepositRefundAmt - r.DepositForfeitAmt
}
