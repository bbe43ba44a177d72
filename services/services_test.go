package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories/memstore"
)

var testNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

// jan trả về 14:00 ngày d tháng 1/2024
func jan(d int) time.Time {
	return time.Date(2024, 1, d, 14, 0, 0, 0, time.UTC)
}

type fixture struct {
	ctx     context.Context
	store   *memstore.Store
	svc     *Services
	admin   Actor
	agent   Actor
	finance Actor
	cleaner Actor
	unit    *models.Unit
	guest   *models.Guest
}

func newFixture(t *testing.T, configure ...func(*Options)) *fixture {
	t.Helper()
	store := memstore.New()
	store.Now = func() time.Time { return testNow }
	opts := Options{
		Store:     store,
		Now:       func() time.Time { return testNow },
		JWTSecret: []byte("test-secret"),
	}
	for _, fn := range configure {
		fn(&opts)
	}

	f := &fixture{ctx: context.Background(), store: store, svc: New(opts)}
	f.admin = f.addUser(t, "admin@homestay.vn", constants.RoleAdmin)
	f.agent = f.addUser(t, "agent@homestay.vn", constants.RoleAgent)
	f.finance = f.addUser(t, "finance@homestay.vn", constants.RoleFinance)
	f.cleaner = f.addUser(t, "cleaner@homestay.vn", constants.RoleCleaner)

	location := &models.Location{Name: "Đà Lạt Garden", City: "Đà Lạt"}
	if err := store.Locations().Create(f.ctx, location); err != nil {
		t.Fatalf("create location: %v", err)
	}
	f.unit = &models.Unit{Code: "DL-101", Name: "Phòng 101", LocationID: location.ID, Capacity: 2, Active: true}
	if err := store.Units().Create(f.ctx, f.unit); err != nil {
		t.Fatalf("create unit: %v", err)
	}
	f.guest = &models.Guest{FullName: "Nguyễn Văn An", PhoneNumber: "0901234567"}
	if err := store.Guests().Create(f.ctx, f.guest); err != nil {
		t.Fatalf("create guest: %v", err)
	}
	return f
}

func (f *fixture) addUser(t *testing.T, email string, role constants.Role) Actor {
	t.Helper()
	u := &models.User{Name: string(role), Email: email, Password: "x", Role: role, IsActive: true}
	if err := f.store.Users().Create(f.ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return Actor{ID: u.ID, Role: role}
}

func (f *fixture) reserve(t *testing.T, status constants.ReservationStatus, in, out int, deposit int64) *models.Reservation {
	t.Helper()
	r, err := f.svc.Reservations.Create(f.ctx, f.agent, dto.CreateReservationRequest{
		UnitID:        f.unit.ID,
		GuestID:       f.guest.ID,
		CheckIn:       dto.Timestamp{Time: jan(in)},
		CheckOut:      dto.Timestamp{Time: jan(out)},
		Status:        status,
		TotalAmount:   1_500_000,
		CleaningFee:   100_000,
		DepositAmount: deposit,
	})
	if err != nil {
		t.Fatalf("create reservation %d-%d: %v", in, out, err)
	}
	return r
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", code)
	}
	appErr := errors.GetAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func assertKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	if !errors.IsKind(err, kind) {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
}

var errBoom = stderrors.New("boom")

func newEmptyStore() *memstore.Store {
	return memstore.New()
}
