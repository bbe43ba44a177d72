package models

import (
	"time"

	apperrors "homestay/errors"
)

// Overlaps kiểm tra hai khoảng nửa mở [aStart, aEnd) và [bStart, bEnd) có giao nhau không.
// Ngày trả phòng của đơn này trùng ngày nhận phòng của đơn kia không bị coi là trùng.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ValidateInterval yêu cầu checkIn < checkOut
func ValidateInterval(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return apperrors.Validation(apperrors.ErrCodeRequiredField, "Thiếu ngày nhận phòng hoặc trả phòng")
	}
	if !checkIn.Before(checkOut) {
		return apperrors.Validation(apperrors.ErrCodeInvalidInterval, "Ngày nhận phòng phải trước ngày trả phòng")
	}
	return nil
}
