package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore tạo Store dùng postgres qua gorm
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository                 { return &userRepository{db: s.db} }
func (s *gormStore) Locations() LocationRepository         { return &locationRepository{db: s.db} }
func (s *gormStore) Units() UnitRepository                 { return &unitRepository{db: s.db} }
func (s *gormStore) Guests() GuestRepository               { return &guestRepository{db: s.db} }
func (s *gormStore) Reservations() ReservationRepository   { return &reservationRepository{db: s.db} }
func (s *gormStore) DepositEvents() DepositEventRepository { return &depositEventRepository{db: s.db} }
func (s *gormStore) CleaningTasks() CleaningTaskRepository { return &cleaningTaskRepository{db: s.db} }
func (s *gormStore) Dashboard() DashboardRepository        { return &dashboardRepository{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func paginate(db *gorm.DB, p Page) *gorm.DB {
	if p.Limit <= 0 {
		return db
	}
	return db.Offset(p.Offset()).Limit(p.Limit)
}

func likePattern(q string) string {
	return "%" + q + "%"
}
