package services

import (
	"testing"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
)

func TestLocationDeleteBlockedByUnits(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Locations.Delete(f.ctx, f.unit.LocationID)
	assertCode(t, err, errors.ErrCodeInUse)

	empty, err := f.svc.Locations.Create(f.ctx, dto.CreateLocationRequest{Name: "Hội An Riverside", City: "Hội An"})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Locations.Delete(f.ctx, empty.ID); err != nil {
		t.Fatalf("delete empty location: %v", err)
	}
	_, err = f.svc.Locations.Get(f.ctx, empty.ID)
	assertKind(t, err, errors.KindNotFound)
}

func TestLocationSuggest(t *testing.T) {
	f := newFixture(t)
	s, err := f.svc.Locations.Suggest(f.ctx, "da lat")
	if err != nil {
		t.Fatal(err)
	}
	if s.Suggestion != "Đà Lạt" {
		t.Fatalf("expected Đà Lạt, got %q", s.Suggestion)
	}
}

func TestUnitCreateAndDuplicateCode(t *testing.T) {
	f := newFixture(t)
	unit, err := f.svc.Units.Create(f.ctx, dto.CreateUnitRequest{
		Code: "dl-102", Name: "Phòng 102", LocationID: f.unit.LocationID, Amenities: []string{"wifi", "bếp"},
	})
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}
	if unit.Code != "DL-102" || unit.Capacity != 1 || !unit.Active || len(unit.Amenities) != 2 {
		t.Fatalf("unexpected unit %+v", unit)
	}

	_, err = f.svc.Units.Create(f.ctx, dto.CreateUnitRequest{Code: "DL-101", Name: "Trùng", LocationID: f.unit.LocationID})
	assertCode(t, err, errors.ErrCodeDBDuplicate)

	_, err = f.svc.Units.Create(f.ctx, dto.CreateUnitRequest{Code: "X-1", Name: "Lạc", LocationID: 999})
	assertKind(t, err, errors.KindNotFound)

	deactivated, err := f.svc.Units.Deactivate(f.ctx, unit.ID)
	if err != nil || deactivated.Active {
		t.Fatalf("deactivate: %+v %v", deactivated, err)
	}
}

func TestUnitAvailabilityEndpoint(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)

	res, err := f.svc.Units.Availability(f.ctx, f.unit.ID, dto.AvailabilityQuery{CheckIn: "2024-01-16", CheckOut: "2024-01-20"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Available || len(res.Conflicts) != 1 || res.Conflicts[0].Code != r.Code {
		t.Fatalf("expected conflict with %s, got %+v", r.Code, res)
	}

	res, err = f.svc.Units.Availability(f.ctx, f.unit.ID, dto.AvailabilityQuery{
		CheckIn: "2024-01-16", CheckOut: "2024-01-20", ExcludeReservationID: r.ID,
	})
	if err != nil || !res.Available {
		t.Fatalf("excluded reservation should not conflict: %+v %v", res, err)
	}

	_, err = f.svc.Units.Availability(f.ctx, f.unit.ID, dto.AvailabilityQuery{CheckIn: "2024-01-20", CheckOut: "2024-01-16"})
	assertCode(t, err, errors.ErrCodeInvalidInterval)
	_, err = f.svc.Units.Availability(f.ctx, f.unit.ID, dto.AvailabilityQuery{CheckIn: "hôm nay", CheckOut: "2024-01-16"})
	assertCode(t, err, errors.ErrCodeInvalidFormat)
}

func TestGuestCRUDAndSearch(t *testing.T) {
	f := newFixture(t)
	guest, err := f.svc.Guests.Create(f.ctx, dto.CreateGuestRequest{FullName: "Trần Thị Mai", Email: " Mai@Example.com "})
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}
	if guest.Email == nil || *guest.Email != "mai@example.com" {
		t.Fatalf("email not normalised: %v", guest.Email)
	}
	noEmail, err := f.svc.Guests.Create(f.ctx, dto.CreateGuestRequest{FullName: "Lê Văn Bình"})
	if err != nil || noEmail.Email != nil {
		t.Fatalf("guest without email: %+v %v", noEmail, err)
	}
	if _, err := f.svc.Guests.Create(f.ctx, dto.CreateGuestRequest{FullName: "Người khác", Email: "mai@example.com"}); err == nil {
		t.Fatal("duplicate guest email should fail")
	} else {
		assertKind(t, err, errors.KindConflict)
	}

	found, total, err := f.svc.Guests.List(f.ctx, dto.GuestListQuery{Query: "tran thi"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || found[0].ID != guest.ID {
		t.Fatalf("expected to find Trần Thị Mai, got %d results", total)
	}

	f.reserve(t, constants.ReservationDraft, 15, 18, 0)
	withHistory, err := f.svc.Guests.Get(f.ctx, f.guest.ID)
	if err != nil || len(withHistory.Reservations) != 1 {
		t.Fatalf("guest should include reservations: %v", err)
	}
	assertCode(t, f.svc.Guests.Delete(f.ctx, f.guest.ID), errors.ErrCodeInUse)

	if err := f.svc.Guests.Delete(f.ctx, noEmail.ID); err != nil {
		t.Fatalf("delete guest: %v", err)
	}
}

func TestUserUpdateGuards(t *testing.T) {
	f := newFixture(t)
	role := constants.RoleAgent
	_, err := f.svc.Users.Update(f.ctx, f.admin, f.admin.ID, dto.UpdateUserRequest{Role: &role})
	assertCode(t, err, errors.ErrCodeInvalidRole)

	_, err = f.svc.Users.Deactivate(f.ctx, f.admin, f.admin.ID)
	assertCode(t, err, errors.ErrCodeInvalidStatus)

	_, err = f.svc.Users.Create(f.ctx, dto.CreateUserRequest{Name: "X", Email: "agent@homestay.vn", Password: "secret123", Role: constants.RoleAgent})
	assertCode(t, err, errors.ErrCodeDBDuplicate)

	_, err = f.svc.Users.Create(f.ctx, dto.CreateUserRequest{Name: "X", Email: "x@homestay.vn", Password: "short", Role: constants.RoleAgent})
	assertKind(t, err, errors.KindValidation)

	active := true
	users, total, err := f.svc.Users.List(f.ctx, dto.UserListQuery{Role: constants.RoleCleaner, Active: &active})
	if err != nil || total != 1 || users[0].ID != f.cleaner.ID {
		t.Fatalf("expected only the cleaner, got %d %v", total, err)
	}
}
