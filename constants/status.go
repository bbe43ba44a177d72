package constants

// Role vai trò của nhân viên trong hệ thống
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleFinance Role = "FINANCE"
	RoleCleaner Role = "CLEANER"
	RoleAgent   Role = "AGENT"
)

// Roles danh sách vai trò hợp lệ
var Roles = []Role{RoleAdmin, RoleFinance, RoleCleaner, RoleAgent}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ReservationStatus trạng thái đơn đặt phòng
type ReservationStatus string

const (
	ReservationDraft      ReservationStatus = "DRAFT"
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationCanceled   ReservationStatus = "CANCELED"
)

var ReservationStatuses = []ReservationStatus{
	ReservationDraft,
	ReservationConfirmed,
	ReservationCheckedIn,
	ReservationCheckedOut,
	ReservationCanceled,
}

// ActiveReservationStatuses các trạng thái chiếm phòng, dùng khi kiểm tra trùng lịch
var ActiveReservationStatuses = []ReservationStatus{ReservationConfirmed, ReservationCheckedIn}

// IsActive trả về true nếu đơn đang giữ phòng
func (s ReservationStatus) IsActive() bool {
	return s == ReservationConfirmed || s == ReservationCheckedIn
}

func (s ReservationStatus) Valid() bool {
	for _, status := range ReservationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// DepositStatus trạng thái tiền cọc
type DepositStatus string

const (
	DepositNotRequired       DepositStatus = "NOT_REQUIRED"
	DepositPending           DepositStatus = "PENDING"
	DepositHeld              DepositStatus = "HELD"
	DepositPaid              DepositStatus = "PAID"
	DepositPartiallyRefunded DepositStatus = "PARTIALLY_REFUNDED"
	DepositRefunded          DepositStatus = "REFUNDED"
	DepositForfeited         DepositStatus = "FORFEITED"
	DepositFailed            DepositStatus = "FAILED"
)

var DepositStatuses = []DepositStatus{
	DepositNotRequired,
	DepositPending,
	DepositHeld,
	DepositPaid,
	DepositPartiallyRefunded,
	DepositRefunded,
	DepositForfeited,
	DepositFailed,
}

func (s DepositStatus) Valid() bool {
	for _, status := range DepositStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Secured trả về true nếu tiền cọc đã được giữ (đủ điều kiện check-in)
func (s DepositStatus) Secured() bool {
	return s == DepositHeld || s == DepositPaid
}

// DepositEventType loại sự kiện trong sổ cọc
type DepositEventType string

const (
	DepositEventRequest DepositEventType = "request"
	DepositEventCollect DepositEventType = "collect"
	DepositEventRefund  DepositEventType = "refund"
	DepositEventForfeit DepositEventType = "forfeit"
	DepositEventFail    DepositEventType = "fail"
)

// CleaningStatus trạng thái công việc dọn phòng
type CleaningStatus string

const (
	CleaningPending    CleaningStatus = "PENDING"
	CleaningAssigned   CleaningStatus = "ASSIGNED"
	CleaningInProgress CleaningStatus = "IN_PROGRESS"
	CleaningDone       CleaningStatus = "DONE"
	CleaningFailed     CleaningStatus = "FAILED"
)

var CleaningStatuses = []CleaningStatus{
	CleaningPending,
	CleaningAssigned,
	CleaningInProgress,
	CleaningDone,
	CleaningFailed,
}

func (s CleaningStatus) Valid() bool {
	for _, status := range CleaningStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Open trả về true nếu công việc chưa kết thúc
func (s CleaningStatus) Open() bool {
	return s != CleaningDone && s != CleaningFailed
}

// Period đơn vị gom nhóm thống kê
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func (p Period) Valid() bool {
	return p == PeriodDay || p == PeriodWeek || p == PeriodMonth
}

// Upload folders
const (
	UploadFolderDeposits = "deposits"
	UploadFolderCleaning = "cleaning"
)

// Deposit methods
const (
	DepositMethodCash         = "CASH"
	DepositMethodBankTransfer = "BANK_TRANSFER"
	DepositMethodCard         = "CARD"
	DepositMethodEWallet      = "EWALLET"
	DepositMethodOTA          = "OTA"
)

var DepositMethods = []string{
	DepositMethodCash,
	DepositMethodBankTransfer,
	DepositMethodCard,
	DepositMethodEWallet,
	DepositMethodOTA,
}
