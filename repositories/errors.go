package repositories

import (
	"errors"
	"strings"

	apperrors "homestay/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
	pgRestrictViolation   = "23001"
)

// translate chuyển lỗi gorm/postgres thành AppError; notFound dùng khi không có bản ghi
func translate(err error, notFound *apperrors.AppError) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFound == nil {
			notFound = apperrors.ErrRecordNotFound
		}
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.Conflict(apperrors.ErrCodeDBDuplicate, duplicateMessage(pgErr.ConstraintName)).Wrap(err)
		case pgExclusionViolation:
			return apperrors.ErrUnitUnavailable.Wrap(err)
		case pgForeignKeyViolation:
			return apperrors.Conflict(apperrors.ErrCodeInUse, "Dữ liệu đang được sử dụng ở nơi khác").Wrap(err)
		case pgRestrictViolation:
			// trigger chặn UPDATE/DELETE trên deposit_events
			return apperrors.ErrEventImmutable.Wrap(err)
		case pgCheckViolation:
			return apperrors.Validation(apperrors.ErrCodeValidation, "Dữ liệu vi phạm ràng buộc: "+pgErr.ConstraintName).Wrap(err)
		}
	}
	return apperrors.Unexpected(err)
}

func duplicateMessage(constraint string) string {
	switch {
	case strings.Contains(constraint, "units_code"):
		return "Mã phòng đã tồn tại"
	case strings.Contains(constraint, "guests_email"):
		return "Email khách đã tồn tại"
	case strings.Contains(constraint, "users_email"):
		return "Email đã được sử dụng"
	case strings.Contains(constraint, "reservations_code"):
		return "Mã đơn đã tồn tại"
	default:
		return "Dữ liệu đã tồn tại"
	}
}
