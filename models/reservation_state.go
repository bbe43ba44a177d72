package models

import (
	"fmt"
	"time"

	"homestay/constants"
	apperrors "homestay/errors"
)

// ReservationState định nghĩa interface cho các trạng thái đơn đặt phòng
type ReservationState interface {
	Confirm(r *Reservation) error
	CheckIn(r *Reservation, at time.Time) error
	CheckOut(r *Reservation, at time.Time) error
	Extend(r *Reservation, newCheckOut time.Time) error
	Cancel(r *Reservation, reason string, at time.Time) error
	// Editable cho phép sửa thông tin đơn
	Editable() bool
	// Deletable cho phép xóa hẳn đơn
	Deletable() bool
}

func invalidReservationTransition(status constants.ReservationStatus, action string) error {
	return apperrors.Conflict(apperrors.ErrCodeInvalidTransition,
		fmt.Sprintf("Không thể %s đơn ở trạng thái %s", action, status))
}

// reservationStateBase từ chối mọi thao tác, các trạng thái cụ thể ghi đè phần được phép
type reservationStateBase struct {
	status constants.ReservationStatus
}

func (s reservationStateBase) Confirm(r *Reservation) error {
	return invalidReservationTransition(s.status, "xác nhận")
}

func (s reservationStateBase) CheckIn(r *Reservation, at time.Time) error {
	return invalidReservationTransition(s.status, "check-in")
}

func (s reservationStateBase) CheckOut(r *Reservation, at time.Time) error {
	return invalidReservationTransition(s.status, "check-out")
}

func (s reservationStateBase) Extend(r *Reservation, newCheckOut time.Time) error {
	return invalidReservationTransition(s.status, "gia hạn")
}

func (s reservationStateBase) Cancel(r *Reservation, reason string, at time.Time) error {
	return invalidReservationTransition(s.status, "hủy")
}

func (s reservationStateBase) Editable() bool  { return false }
func (s reservationStateBase) Deletable() bool { return false }

func cancelReservation(r *Reservation, reason string, at time.Time) error {
	r.Status = constants.ReservationCanceled
	r.CancelReason = reason
	r.CanceledAt = &at
	return nil
}

func extendReservation(r *Reservation, newCheckOut time.Time) error {
	if !newCheckOut.After(r.CheckOut) {
		return apperrors.Validation(apperrors.ErrCodeInvalidInterval, "Ngày trả phòng mới phải sau ngày trả phòng hiện tại")
	}
	r.CheckOut = newCheckOut
	return nil
}

// DraftState đơn nháp, chưa giữ phòng
type DraftState struct{ reservationStateBase }

func (s DraftState) Confirm(r *Reservation) error {
	r.Status = constants.ReservationConfirmed
	return nil
}

func (s DraftState) Cancel(r *Reservation, reason string, at time.Time) error {
	return cancelReservation(r, reason, at)
}

func (s DraftState) Editable() bool  { return true }
func (s DraftState) Deletable() bool { return true }

// ConfirmedState đơn đã xác nhận, đang giữ phòng
type ConfirmedState struct{ reservationStateBase }

func (s ConfirmedState) CheckIn(r *Reservation, at time.Time) error {
	r.Status = constants.ReservationCheckedIn
	r.CheckedInAt = &at
	return nil
}

func (s ConfirmedState) Extend(r *Reservation, newCheckOut time.Time) error {
	return extendReservation(r, newCheckOut)
}

func (s ConfirmedState) Cancel(r *Reservation, reason string, at time.Time) error {
	return cancelReservation(r, reason, at)
}

func (s ConfirmedState) Editable() bool { return true }

// CheckedInState khách đang ở
type CheckedInState struct{ reservationStateBase }

func (s CheckedInState) CheckOut(r *Reservation, at time.Time) error {
	r.Status = constants.ReservationCheckedOut
	r.CheckedOutAt = &at
	return nil
}

func (s CheckedInState) Extend(r *Reservation, newCheckOut time.Time) error {
	return extendReservation(r, newCheckOut)
}

func (s CheckedInState) Cancel(r *Reservation, reason string, at time.Time) error {
	return cancelReservation(r, reason, at)
}

// CheckedOutState khách đã trả phòng
type CheckedOutState struct{ reservationStateBase }

// CanceledState đơn đã hủy
type CanceledState struct{ reservationStateBase }

func (s CanceledState) Deletable() bool { return true }

// GetReservationState trả về state tương ứng với trạng thái đơn
func GetReservationState(status constants.ReservationStatus) ReservationState {
	base := reservationStateBase{status: status}
	switch status {
	case constants.ReservationDraft:
		return DraftState{base}
	case constants.ReservationConfirmed:
		return ConfirmedState{base}
	case constants.ReservationCheckedIn:
		return CheckedInState{base}
	case constants.ReservationCheckedOut:
		return CheckedOutState{base}
	case constants.ReservationCanceled:
		return CanceledState{base}
	default:
		return base
	}
}
