package response

import (
	"net/http"

	apperrors "homestay/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorBody mô tả lỗi trả về cho client
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Created trả về response khi tạo mới thành công
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit int, total int64) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error trả về response lỗi
func Error(c *gin.Context, status int, code apperrors.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    string(code),
			Message: message,
		},
	})
}

// Fail trả về response tương ứng với loại lỗi
func Fail(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Kind == apperrors.KindUnexpected {
		_ = c.Error(err)
		ServerError(c)
		return
	}
	Error(c, apperrors.HTTPStatus(appErr), appErr.Code, appErr.Message)
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, apperrors.ErrCodeInternal, "Lỗi server")
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized, "Chưa xác thực")
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, apperrors.ErrCodeForbidden, "Không có quyền truy cập")
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, apperrors.ErrCodeNotFound, "Không tìm thấy")
}

// ValidationError trả về response lỗi validation
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.ErrCodeValidation, message)
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.ErrCodeInvalidFormat, message)
}

// Conflict trả về response xung đột dữ liệu
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.ErrCodeDBDuplicate, message)
}

// TooManyRequests trả về response khi vượt giới hạn request
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Quá nhiều yêu cầu, vui lòng thử lại sau")
}
