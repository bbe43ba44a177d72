package validator

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"homestay/constants"
	"homestay/errors"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
)

// Register đăng ký các rule tùy chỉnh cho validator của gin
func Register() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return fmt.Errorf("validator: unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterRules(v)
}

// RegisterRules đăng ký rule: role, phone, depositmethod, period
func RegisterRules(v *playground.Validate) error {
	rules := map[string]playground.Func{
		"role":          validateRole,
		"phone":         validatePhoneField,
		"depositmethod": validateDepositMethod,
		"period":        validatePeriod,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateRole(fl playground.FieldLevel) bool {
	return constants.Role(fl.Field().String()).Valid()
}

func validatePhoneField(fl playground.FieldLevel) bool {
	return isValidPhone(fl.Field().String())
}

func validateDepositMethod(fl playground.FieldLevel) bool {
	method := fl.Field().String()
	for _, m := range constants.DepositMethods {
		if m == method {
			return true
		}
	}
	return false
}

func validatePeriod(fl playground.FieldLevel) bool {
	return constants.Period(fl.Field().String()).Valid()
}

// BindingError chuyển lỗi binding của gin thành thông báo dễ đọc
func BindingError(err error) error {
	var verrs playground.ValidationErrors
	if !stderrors.As(err, &verrs) {
		if appErr := errors.GetAppError(err); appErr != nil {
			return appErr
		}
		return errors.Validation(errors.ErrCodeInvalidFormat, "Dữ liệu gửi lên không hợp lệ")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.Validation(errors.ErrCodeValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s không được để trống", field)
	case "email":
		return fmt.Sprintf("%s không phải email hợp lệ", field)
	case "phone":
		return fmt.Sprintf("%s không phải số điện thoại hợp lệ", field)
	case "role":
		return fmt.Sprintf("%s phải là một trong %v", field, constants.Roles)
	case "depositmethod":
		return fmt.Sprintf("%s phải là một trong %v", field, constants.DepositMethods)
	case "period":
		return fmt.Sprintf("%s phải là day, week hoặc month", field)
	case "min":
		return fmt.Sprintf("%s phải lớn hơn hoặc bằng %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s phải lớn hơn %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s vượt quá giới hạn %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s phải là một trong [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s không hợp lệ", field)
	}
}

// ValidateEmail validate email, chuỗi rỗng là lỗi
func ValidateEmail(email string) error {
	if email == "" {
		return errors.Validation(errors.ErrCodeRequiredField, "Email không được để trống")
	}
	if !isValidEmail(email) {
		return errors.Validation(errors.ErrCodeInvalidEmail, "Email không hợp lệ")
	}
	return nil
}

// ValidatePassword yêu cầu mật khẩu tối thiểu 8 ký tự
func ValidatePassword(password string) error {
	if password == "" {
		return errors.Validation(errors.ErrCodeRequiredField, "Mật khẩu không được để trống")
	}
	if len(password) < 8 {
		return errors.Validation(errors.ErrCodeValidation, "Mật khẩu phải có ít nhất 8 ký tự")
	}
	return nil
}

// ValidatePhone cho phép để trống
func ValidatePhone(phone string) error {
	if phone != "" && !isValidPhone(phone) {
		return errors.Validation(errors.ErrCodeInvalidPhone, "Số điện thoại không hợp lệ")
	}
	return nil
}

// ValidateRole validate vai trò nhân viên
func ValidateRole(role constants.Role) error {
	if !role.Valid() {
		return errors.Validation(errors.ErrCodeInvalidRole, "Role không hợp lệ")
	}
	return nil
}

// ValidateAmount validate số tiền
func ValidateAmount(amount int64) error {
	if amount < 0 {
		return errors.Validation(errors.ErrCodeInvalidAmount, "Số tiền không được âm")
	}
	return nil
}

// isValidEmail kiểm tra email hợp lệ
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// isValidPhone kiểm tra số điện thoại hợp lệ
func isValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
