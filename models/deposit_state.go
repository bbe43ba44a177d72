package models

import (
	"fmt"
	"time"

	"homestay/constants"
	apperrors "homestay/errors"
)

// DepositCollection thông tin khi thu cọc
type DepositCollection struct {
	Method      string
	TxnID       string
	EvidenceURL string
}

// DepositState định nghĩa interface cho các trạng thái tiền cọc
type DepositState interface {
	Request(r *Reservation, amount int64) error
	Collect(r *Reservation, in DepositCollection, at time.Time) error
	Refund(r *Reservation, amount int64) error
	Forfeit(r *Reservation, amount int64) error
	Fail(r *Reservation) error
}

func invalidDepositTransition(status constants.DepositStatus, action string) error {
	return apperrors.Conflict(apperrors.ErrCodeInvalidTransition,
		fmt.Sprintf("Không thể %s khi tiền cọc ở trạng thái %s", action, status))
}

type depositStateBase struct {
	status constants.DepositStatus
}

func (s depositStateBase) Request(r *Reservation, amount int64) error {
	return invalidDepositTransition(s.status, "yêu cầu cọc")
}

// Collect được phép từ mọi trạng thái trừ PAID, miễn là đơn đã yêu cầu cọc
func (s depositStateBase) Collect(r *Reservation, in DepositCollection, at time.Time) error {
	return collectDeposit(r, in, at)
}

func (s depositStateBase) Refund(r *Reservation, amount int64) error {
	return invalidDepositTransition(s.status, "hoàn cọc")
}

func (s depositStateBase) Forfeit(r *Reservation, amount int64) error {
	return invalidDepositTransition(s.status, "giữ cọc")
}

func (s depositStateBase) Fail(r *Reservation) error {
	return invalidDepositTransition(s.status, "đánh dấu thất bại")
}

func collectDeposit(r *Reservation, in DepositCollection, at time.Time) error {
	if !r.DepositRequired || r.DepositAmount <= 0 {
		return invalidDepositTransition(r.DepositStatus, "thu cọc")
	}
	r.DepositStatus = constants.DepositPaid
	r.DepositMethod = in.Method
	r.DepositTxnID = in.TxnID
	r.DepositEvidenceURL = in.EvidenceURL
	r.DepositPaidAt = &at
	return nil
}

func refundDeposit(r *Reservation, amount int64) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if amount > r.DepositBalance() {
		return apperrors.Validation(apperrors.ErrCodeAmountExceeded,
			fmt.Sprintf("Số tiền hoàn vượt quá số cọc còn lại (%d)", r.DepositBalance()))
	}
	r.DepositRefundAmt += amount
	if r.DepositRefundAmt+r.DepositForfeitAmt < r.DepositAmount {
		r.DepositStatus = constants.DepositPartiallyRefunded
	} else {
		r.DepositStatus = constants.DepositRefunded
	}
	return nil
}

func forfeitDeposit(r *Reservation, amount int64) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if amount > r.DepositAmount-r.DepositRefundAmt {
		return apperrors.Validation(apperrors.ErrCodeAmountExceeded,
			fmt.Sprintf("Số tiền giữ lại vượt quá số cọc còn lại (%d)", r.DepositAmount-r.DepositRefundAmt))
	}
	r.DepositForfeitAmt = amount
	r.DepositStatus = constants.DepositForfeited
	return nil
}

// NotRequiredDepositState đơn chưa yêu cầu cọc
type NotRequiredDepositState struct{ depositStateBase }

func (s NotRequiredDepositState) Request(r *Reservation, amount int64) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	r.DepositRequired = true
	r.DepositAmount = amount
	r.DepositRefundAmt = 0
	r.DepositForfeitAmt = 0
	r.DepositStatus = constants.DepositPending
	return nil
}

// PendingDepositState đã yêu cầu, chờ khách chuyển cọc
type PendingDepositState struct{ depositStateBase }

func (s PendingDepositState) Fail(r *Reservation) error {
	r.DepositStatus = constants.DepositFailed
	return nil
}

// HeldDepositState cọc đang được giữ bởi bên thứ ba
type HeldDepositState struct{ depositStateBase }

func (s HeldDepositState) Refund(r *Reservation, amount int64) error {
	return refundDeposit(r, amount)
}

func (s HeldDepositState) Forfeit(r *Reservation, amount int64) error {
	return forfeitDeposit(r, amount)
}

// PaidDepositState đã thu đủ cọc
type PaidDepositState struct{ depositStateBase }

func (s PaidDepositState) Collect(r *Reservation, in DepositCollection, at time.Time) error {
	return invalidDepositTransition(s.status, "thu cọc")
}

func (s PaidDepositState) Refund(r *Reservation, amount int64) error {
	return refundDeposit(r, amount)
}

func (s PaidDepositState) Forfeit(r *Reservation, amount int64) error {
	return forfeitDeposit(r, amount)
}

// PartiallyRefundedDepositState đã hoàn một phần
type PartiallyRefundedDepositState struct{ depositStateBase }

func (s PartiallyRefundedDepositState) Refund(r *Reservation, amount int64) error {
	return refundDeposit(r, amount)
}

// FailedDepositState thu cọc thất bại, có thể thu lại
type FailedDepositState struct{ depositStateBase }

// GetDepositState trả về state tương ứng với trạng thái tiền cọc
func GetDepositState(status constants.DepositStatus) DepositState {
	base := depositStateBase{status: status}
	switch status {
	case constants.DepositNotRequired, "":
		return NotRequiredDepositState{base}
	case constants.DepositPending:
		return PendingDepositState{base}
	case constants.DepositHeld:
		return HeldDepositState{base}
	case constants.DepositPaid:
		return PaidDepositState{base}
	case constants.DepositPartiallyRefunded:
		return PartiallyRefundedDepositState{base}
	case constants.DepositFailed:
		return FailedDepositState{base}
	default:
		if !status.Valid() {
			return unknownDepositState{base}
		}
		return base
	}
}

// unknownDepositState trạng thái lạ trong DB, từ chối mọi thao tác
type unknownDepositState struct{ depositStateBase }

func (s unknownDepositState) Collect(r *Reservation, in DepositCollection, at time.Time) error {
	return invalidDepositTransition(s.status, "thu cọc")
}
