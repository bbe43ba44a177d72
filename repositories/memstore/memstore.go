// Package memstore cài đặt repositories.Store trong bộ nhớ, dùng cho test và chạy thử không cần postgres.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "homestay/errors"
	"homestay/models"
	"homestay/repositories"
)

type data struct {
	nextID       uint
	users        map[uint]models.User
	locations    map[uint]models.Location
	units        map[uint]models.Unit
	guests       map[uint]models.Guest
	reservations map[uint]models.Reservation
	events       []models.DepositEvent
	tasks        map[uint]models.CleaningTask
	photos       []models.CleaningPhoto
}

func newData() *data {
	return &data{
		users:        map[uint]models.User{},
		locations:    map[uint]models.Location{},
		units:        map[uint]models.Unit{},
		guests:       map[uint]models.Guest{},
		reservations: map[uint]models.Reservation{},
		tasks:        map[uint]models.CleaningTask{},
	}
}

func (d *data) clone() *data {
	cp := newData()
	cp.nextID = d.nextID
	for k, v := range d.users {
		cp.users[k] = v
	}
	for k, v := range d.locations {
		cp.locations[k] = v
	}
	for k, v := range d.units {
		cp.units[k] = v
	}
	for k, v := range d.guests {
		cp.guests[k] = v
	}
	for k, v := range d.reservations {
		cp.reservations[k] = v
	}
	for k, v := range d.tasks {
		cp.tasks[k] = v
	}
	cp.events = append([]models.DepositEvent(nil), d.events...)
	cp.photos = append([]models.CleaningPhoto(nil), d.photos...)
	return cp
}

func (d *data) id() uint {
	d.nextID++
	return d.nextID
}

// Store lưu dữ liệu trong map; Transaction chụp lại toàn bộ dữ liệu và khôi phục khi fn lỗi
type Store struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	d      *data
	failOn map[string]error
	Now    func() time.Time
}

func New() *Store {
	return &Store{d: newData(), failOn: map[string]error{}, Now: time.Now}
}

// FailOn làm thao tác op (ví dụ "deposit_events.append") trả về err cho tới khi được gỡ bằng err nil
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failOn, op)
		return
	}
	s.failOn[op] = err
}

// fail phải được gọi khi đang giữ s.mu
func (s *Store) fail(op string) error {
	if err, ok := s.failOn[op]; ok {
		return apperrors.Unexpected(err)
	}
	return nil
}

func (s *Store) Users() repositories.UserRepository                 { return &userRepo{s} }
func (s *Store) Locations() repositories.LocationRepository         { return &locationRepo{s} }
func (s *Store) Units() repositories.UnitRepository                 { return &unitRepo{s} }
func (s *Store) Guests() repositories.GuestRepository               { return &guestRepo{s} }
func (s *Store) Reservations() repositories.ReservationRepository   { return &reservationRepo{s} }
func (s *Store) DepositEvents() repositories.DepositEventRepository { return &eventRepo{s} }
func (s *Store) CleaningTasks() repositories.CleaningTaskRepository { return &taskRepo{s} }
func (s *Store) Dashboard() repositories.DashboardRepository        { return &dashboardRepo{s} }

func (s *Store) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	if err := fn(txStore{s}); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// txStore là Store bên trong transaction; transaction lồng nhau dùng chung transaction ngoài
type txStore struct {
	*Store
}

func (t txStore) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return fn(t)
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func page[T any](items []T, p repositories.Page) []T {
	if p.Limit <= 0 {
		return items
	}
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func sortByID[T any](items []T, id func(T) uint) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
