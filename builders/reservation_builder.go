package builders

import (
	"strings"
	"time"

	"homestay/constants"
	"homestay/models"
)

// ReservationBuilder giúp tạo đơn đặt phòng theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo đơn nháp, chưa yêu cầu cọc
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{
			Status:        constants.ReservationDraft,
			DepositStatus: constants.DepositNotRequired,
		},
	}
}

// ForUnit gắn phòng và khách của đơn
func (b *ReservationBuilder) ForUnit(unitID, guestID uint) *ReservationBuilder {
	b.reservation.UnitID = unitID
	b.reservation.GuestID = guestID
	return b
}

// WithStay thêm khoảng lưu trú [checkIn, checkOut)
func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time) *ReservationBuilder {
	b.reservation.CheckIn = checkIn
	b.reservation.CheckOut = checkOut
	return b
}

// WithStatus bỏ qua giá trị rỗng
func (b *ReservationBuilder) WithStatus(status constants.ReservationStatus) *ReservationBuilder {
	if status != "" {
		b.reservation.Status = status
	}
	return b
}

// WithAmounts thêm tiền phòng và phí dọn phòng
func (b *ReservationBuilder) WithAmounts(total, cleaningFee int64) *ReservationBuilder {
	b.reservation.TotalAmount = total
	b.reservation.CleaningFee = cleaningFee
	return b
}

func (b *ReservationBuilder) WithNotes(notes string) *ReservationBuilder {
	b.reservation.Notes = strings.TrimSpace(notes)
	return b
}

// CreatedBy nil với thao tác của hệ thống
func (b *ReservationBuilder) CreatedBy(userID *uint) *ReservationBuilder {
	b.reservation.CreatedByID = userID
	return b
}

// Build trả về đơn hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
