package repositories

import (
	"context"
	"time"

	"homestay/constants"
	"homestay/models"
)

// Store gom các repository; Transaction cung cấp một Store gắn với transaction
type Store interface {
	Users() UserRepository
	Locations() LocationRepository
	Units() UnitRepository
	Guests() GuestRepository
	Reservations() ReservationRepository
	DepositEvents() DepositEventRepository
	CleaningTasks() CleaningTaskRepository
	Dashboard() DashboardRepository

	// Transaction chạy fn trong một transaction, fn trả lỗi thì rollback toàn bộ
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Page phân trang; Limit <= 0 nghĩa là lấy tất cả
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	if p.Page <= 0 || p.Limit <= 0 {
		return 0
	}
	return p.Page * p.Limit
}

type UserFilter struct {
	Page
	Role   constants.Role
	Active *bool
	Query  string
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

type LocationFilter struct {
	Page
	Query string
}

type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	Save(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Location, error)
	List(ctx context.Context, filter LocationFilter) ([]models.Location, int64, error)
}

type UnitFilter struct {
	Page
	LocationID uint
	Active     *bool
	Query      string
}

type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	Save(ctx context.Context, unit *models.Unit) error
	FindByID(ctx context.Context, id uint) (*models.Unit, error)
	// FindByIDForUpdate khóa dòng (SELECT ... FOR UPDATE) đến hết transaction
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Unit, error)
	List(ctx context.Context, filter UnitFilter) ([]models.Unit, int64, error)
	CountByLocation(ctx context.Context, locationID uint) (int64, error)
}

type GuestFilter struct {
	Page
	Query string
}

type GuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	Save(ctx context.Context, guest *models.Guest) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
	List(ctx context.Context, filter GuestFilter) ([]models.Guest, int64, error)
}

type ReservationFilter struct {
	Page
	Status        constants.ReservationStatus
	DepositStatus constants.DepositStatus
	// DepositOnly chỉ lấy các đơn có yêu cầu cọc
	DepositOnly bool
	UnitID      uint
	GuestID     uint
	LocationID  uint
	// From/To lọc các đơn giao với khoảng [From, To)
	From *time.Time
	To   *time.Time
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	Save(ctx context.Context, reservation *models.Reservation) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Reservation, error)
	// FindOverlapping trả về các đơn CONFIRMED/CHECKED_IN của unit giao với [checkIn, checkOut), bỏ qua excludeID
	FindOverlapping(ctx context.Context, unitID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int64, error)
	CountByGuest(ctx context.Context, guestID uint) (int64, error)
}

type DepositEventRepository interface {
	Append(ctx context.Context, event *models.DepositEvent) error
	ListByReservation(ctx context.Context, reservationID uint) ([]models.DepositEvent, error)
	CountByReservation(ctx context.Context, reservationID uint) (int64, error)
}

type CleaningTaskFilter struct {
	Page
	Status        constants.CleaningStatus
	AssignedToID  uint
	UnitID        uint
	ReservationID uint
}

type CleaningTaskRepository interface {
	Create(ctx context.Context, task *models.CleaningTask) error
	Save(ctx context.Context, task *models.CleaningTask) error
	FindByID(ctx context.Context, id uint) (*models.CleaningTask, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.CleaningTask, error)
	List(ctx context.Context, filter CleaningTaskFilter) ([]models.CleaningTask, int64, error)
	AddPhotos(ctx context.Context, photos []models.CleaningPhoto) error
}

// DashboardTotals số liệu tổng hợp cho một khoảng thời gian
type DashboardTotals struct {
	StatusCounts      map[constants.ReservationStatus]int64
	Arrivals          int64
	Departures        int64
	Revenue           int64
	CleaningFees      int64
	DepositsHeld      int64
	OpenCleaningTasks int64
}

// SeriesRow một mốc thống kê; Bucket là giờ địa phương của kỳ
type SeriesRow struct {
	Bucket       time.Time `gorm:"column:bucket"`
	Reservations int64     `gorm:"column:reservations"`
	Revenue      int64     `gorm:"column:revenue"`
}

type DashboardRepository interface {
	Totals(ctx context.Context, from, to time.Time) (*DashboardTotals, error)
	Series(ctx context.Context, from, to time.Time, period constants.Period, loc *time.Location) ([]SeriesRow, error)
}
