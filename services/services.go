package services

import (
	"context"
	"time"

	"homestay/constants"
	"homestay/repositories"
	"homestay/services/events"
	"homestay/services/logger"
	"homestay/services/storage"
)

const DefaultTimezone = "Asia/Ho_Chi_Minh"

// Actor người dùng đang thực hiện thao tác, lấy từ token
type Actor struct {
	ID   uint
	Role constants.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

func (a Actor) Can(c constants.Capability) bool {
	return constants.Can(a.Role, c)
}

// IDPtr trả về nil với actor hệ thống (ID = 0)
func (a Actor) IDPtr() *uint {
	if a.ID == 0 {
		return nil
	}
	id := a.ID
	return &id
}

// Options cấu hình chung cho các service
type Options struct {
	Store     repositories.Store
	Cache     Cache
	Storage   storage.Storage
	Publisher events.Publisher
	Logger    logger.Logger
	Revoker   TokenRevoker
	// Now mặc định là time.Now
	Now      func() time.Time
	Location *time.Location

	JWTSecret   []byte
	TokenExpiry time.Duration

	// DepositCheckInOverride cho phép check-in khi chưa thu cọc
	DepositCheckInOverride bool
	DashboardCacheTTL      time.Duration
	MaxUploadSize          int64
}

func (o *Options) withDefaults() {
	if o.Cache == nil {
		o.Cache = NopCache{}
	}
	if o.Publisher == nil {
		o.Publisher = events.NopPublisher{}
	}
	if o.Logger == nil {
		o.Logger = logger.NewNop()
	}
	if o.Revoker == nil {
		o.Revoker = NewMemoryTokenRevoker()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.TokenExpiry <= 0 {
		o.TokenExpiry = 24 * time.Hour
	}
	if o.DashboardCacheTTL <= 0 {
		o.DashboardCacheTTL = 5 * time.Minute
	}
	if o.MaxUploadSize <= 0 {
		o.MaxUploadSize = 10 << 20
	}
}

// Services tập hợp toàn bộ service của ứng dụng
type Services struct {
	Auth         *AuthService
	Users        *UserService
	Locations    *LocationService
	Units        *UnitService
	Guests       *GuestService
	Availability *AvailabilityService
	Reservations *ReservationService
	Deposits     *DepositService
	Cleaning     *CleaningService
	Dashboard    *DashboardService
	Uploads      *UploadService
}

func New(opts Options) *Services {
	opts.withDefaults()
	dashboard := NewDashboardService(opts)
	availability := NewAvailabilityService(opts.Store)
	return &Services{
		Auth:         NewAuthService(opts),
		Users:        NewUserService(opts),
		Locations:    NewLocationService(opts),
		Units:        NewUnitService(opts, availability),
		Guests:       NewGuestService(opts),
		Availability: availability,
		Reservations: NewReservationService(opts, dashboard),
		Deposits:     NewDepositService(opts, dashboard),
		Cleaning:     NewCleaningService(opts, dashboard),
		Dashboard:    dashboard,
		Uploads:      NewUploadService(opts),
	}
}

// publish gửi sự kiện sau commit; lỗi chỉ được ghi log
func publish(ctx context.Context, p events.Publisher, log logger.Logger, routingKey string, payload interface{}) {
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		log.Error("publish %s thất bại: %v", routingKey, err)
	}
}
