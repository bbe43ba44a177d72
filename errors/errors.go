package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"

	// Validation errors
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField   ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat   ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidEmail    ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidPhone    ErrorCode = "INVALID_PHONE"
	ErrCodeInvalidRole     ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidAmount   ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidInterval ErrorCode = "INVALID_INTERVAL"
	ErrCodeInvalidStatus   ErrorCode = "INVALID_STATUS"
	ErrCodeAmountExceeded  ErrorCode = "DEPOSIT_AMOUNT_EXCEEDED"
	ErrCodeInvalidFile     ErrorCode = "INVALID_FILE"

	// Not found
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Business errors
	ErrCodeUnitUnavailable   ErrorCode = "UNIT_NOT_AVAILABLE"
	ErrCodeUnitInactive      ErrorCode = "UNIT_INACTIVE"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeDepositRequired   ErrorCode = "DEPOSIT_REQUIRED"
	ErrCodeInUse             ErrorCode = "IN_USE"
	ErrCodeImmutable         ErrorCode = "IMMUTABLE"
	ErrCodeNotAssignee       ErrorCode = "NOT_ASSIGNEE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Kind phân loại lỗi, quyết định HTTP status trả về cho client
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	default:
		return "unexpected"
	}
}

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Kind    Kind
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap trả về bản sao của lỗi kèm nguyên nhân gốc
func (e *AppError) Wrap(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// NewAppError tạo một AppError mới
func NewAppError(kind Kind, code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(code ErrorCode, message string) *AppError {
	return NewAppError(KindValidation, code, message, nil)
}

func Conflict(code ErrorCode, message string) *AppError {
	return NewAppError(KindConflict, code, message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(KindNotFound, ErrCodeNotFound, message, nil)
}

func Unauthorized(code ErrorCode, message string) *AppError {
	return NewAppError(KindUnauthenticated, code, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(KindForbidden, ErrCodeForbidden, message, nil)
}

// Unexpected bọc lỗi hạ tầng (DB, Redis, storage...) thành lỗi server
func Unexpected(err error) *AppError {
	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}
	return NewAppError(KindUnexpected, ErrCodeInternal, "Lỗi server", err)
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// KindOf trả về loại lỗi; lỗi không phải AppError được coi là Unexpected
func KindOf(err error) Kind {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind
	}
	return KindUnexpected
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus ánh xạ lỗi sang HTTP status
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrMissingToken       = Unauthorized(ErrCodeMissingToken, "Thiếu token xác thực")
	ErrInvalidToken       = Unauthorized(ErrCodeInvalidToken, "Token không hợp lệ hoặc đã hết hạn")
	ErrInvalidCredentials = Unauthorized(ErrCodeInvalidCredentials, "Email hoặc mật khẩu không đúng")
	ErrUserInactive       = Unauthorized(ErrCodeUserInactive, "Tài khoản đã bị vô hiệu hóa")
	ErrForbidden          = Forbidden("Không có quyền truy cập")

	ErrUserNotFound        = NotFound("Không tìm thấy người dùng")
	ErrLocationNotFound    = NotFound("Không tìm thấy cơ sở")
	ErrUnitNotFound        = NotFound("Không tìm thấy phòng")
	ErrGuestNotFound       = NotFound("Không tìm thấy khách")
	ErrReservationNotFound = NotFound("Không tìm thấy đơn đặt phòng")
	ErrCleaningNotFound    = NotFound("Không tìm thấy công việc dọn phòng")
	ErrRecordNotFound      = NotFound("Không tìm thấy dữ liệu")

	ErrUnitUnavailable = Conflict(ErrCodeUnitUnavailable, "Phòng đã có người đặt trong khoảng thời gian này")
	ErrUnitInactive    = Conflict(ErrCodeUnitInactive, "Phòng đã ngừng hoạt động")
	ErrDepositRequired = Conflict(ErrCodeDepositRequired, "Khách chưa đặt cọc, không thể check-in")
	ErrEventImmutable  = Conflict(ErrCodeImmutable, "Không thể sửa hoặc xóa lịch sử tiền cọc")
	ErrNotAssignee     = Forbidden("Chỉ nhân viên được giao mới được thao tác công việc này")
	ErrInvalidAmount   = Validation(ErrCodeInvalidAmount, "Số tiền phải lớn hơn 0")
)
