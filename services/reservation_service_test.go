package services

import (
	"testing"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
	"homestay/repositories"
)

func TestCreateRejectsOverlappingReservation(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)

	_, err := f.svc.Reservations.Create(f.ctx, f.agent, dto.CreateReservationRequest{
		UnitID:   f.unit.ID,
		GuestID:  f.guest.ID,
		CheckIn:  dto.Timestamp{Time: jan(16)},
		CheckOut: dto.Timestamp{Time: jan(20)},
		Status:   constants.ReservationConfirmed,
	})
	assertCode(t, err, errors.ErrCodeUnitUnavailable)
	assertKind(t, err, errors.KindConflict)

	_, total, err := f.svc.Reservations.List(f.ctx, dto.ReservationListQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Fatalf("expected 1 reservation, got %d", total)
	}
}

func TestBackToBackReservationsAllowed(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)
	f.reserve(t, constants.ReservationConfirmed, 18, 20, 0)
	f.reserve(t, constants.ReservationConfirmed, 12, 15, 0)
}

func TestDraftAndCanceledDoNotBlock(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, constants.ReservationDraft, 15, 18, 0)
	confirmed := f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)

	if _, err := f.svc.Reservations.Cancel(f.ctx, confirmed.ID, "khách hủy"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	f.reserve(t, constants.ReservationConfirmed, 16, 17, 0)

	ok, err := f.svc.Availability.IsAvailable(f.ctx, f.unit.ID, jan(20), jan(22), 0)
	if err != nil || !ok {
		t.Fatalf("expected unit available, got %v %v", ok, err)
	}
}

func TestConfirmRechecksAvailability(t *testing.T) {
	f := newFixture(t)
	draft := f.reserve(t, constants.ReservationDraft, 15, 18, 0)
	f.reserve(t, constants.ReservationConfirmed, 16, 20, 0)

	_, err := f.svc.Reservations.Confirm(f.ctx, draft.ID)
	assertCode(t, err, errors.ErrCodeUnitUnavailable)

	got, _ := f.svc.Reservations.Get(f.ctx, draft.ID)
	if got.Status != constants.ReservationDraft {
		t.Fatalf("status changed to %s after failed confirm", got.Status)
	}
}

func TestUpdateExcludesItselfFromOverlapCheck(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)

	checkOut := dto.Timestamp{Time: jan(17)}
	updated, err := f.svc.Reservations.Update(f.ctx, r.ID, dto.UpdateReservationRequest{CheckOut: &checkOut})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.CheckOut.Equal(jan(17)) {
		t.Fatalf("checkOut not updated: %v", updated.CheckOut)
	}

	bad := dto.Timestamp{Time: jan(14)}
	_, err = f.svc.Reservations.Update(f.ctx, r.ID, dto.UpdateReservationRequest{CheckOut: &bad})
	assertCode(t, err, errors.ErrCodeInvalidInterval)
}

func TestExtendChecksOtherReservations(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)
	f.reserve(t, constants.ReservationConfirmed, 20, 22, 0)

	_, err := f.svc.Reservations.Extend(f.ctx, r.ID, jan(21))
	assertCode(t, err, errors.ErrCodeUnitUnavailable)

	_, err = f.svc.Reservations.Extend(f.ctx, r.ID, jan(17))
	assertKind(t, err, errors.KindValidation)

	extended, err := f.svc.Reservations.Extend(f.ctx, r.ID, jan(20))
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	if !extended.CheckOut.Equal(jan(20)) {
		t.Fatalf("expected checkOut 20, got %v", extended.CheckOut)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	f := newFixture(t)
	base := dto.CreateReservationRequest{
		UnitID:   f.unit.ID,
		GuestID:  f.guest.ID,
		CheckIn:  dto.Timestamp{Time: jan(18)},
		CheckOut: dto.Timestamp{Time: jan(18)},
	}
	_, err := f.svc.Reservations.Create(f.ctx, f.agent, base)
	assertCode(t, err, errors.ErrCodeInvalidInterval)

	base.CheckOut = dto.Timestamp{Time: jan(19)}
	base.TotalAmount = -1
	_, err = f.svc.Reservations.Create(f.ctx, f.agent, base)
	assertCode(t, err, errors.ErrCodeInvalidAmount)

	base.TotalAmount = 0
	base.GuestID = 999
	_, err = f.svc.Reservations.Create(f.ctx, f.agent, base)
	assertKind(t, err, errors.KindNotFound)

	if _, err := f.svc.Units.Deactivate(f.ctx, f.unit.ID); err != nil {
		t.Fatal(err)
	}
	base.GuestID = f.guest.ID
	_, err = f.svc.Reservations.Create(f.ctx, f.agent, base)
	assertCode(t, err, errors.ErrCodeUnitInactive)
}

func TestCreateWithDepositRequestsInSameTransaction(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)

	if !r.DepositRequired || r.DepositStatus != constants.DepositPending || r.DepositAmount != 500_000 {
		t.Fatalf("unexpected deposit fields: %+v", r)
	}
	events, err := f.svc.Deposits.Events(f.ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != constants.DepositEventRequest || events[0].Amount != 500_000 {
		t.Fatalf("expected one request event, got %+v", events)
	}
	if events[0].ActorID == nil || *events[0].ActorID != f.agent.ID {
		t.Fatalf("event actor not recorded")
	}
}

func TestCreateRollsBackWhenEventAppendFails(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("deposit_events.append", errBoom)

	_, err := f.svc.Reservations.Create(f.ctx, f.agent, dto.CreateReservationRequest{
		UnitID:        f.unit.ID,
		GuestID:       f.guest.ID,
		CheckIn:       dto.Timestamp{Time: jan(15)},
		CheckOut:      dto.Timestamp{Time: jan(18)},
		Status:        constants.ReservationConfirmed,
		DepositAmount: 300_000,
	})
	assertKind(t, err, errors.KindUnexpected)

	_, total, _ := f.svc.Reservations.List(f.ctx, dto.ReservationListQuery{})
	if total != 0 {
		t.Fatalf("reservation should be rolled back, found %d", total)
	}

	f.store.FailOn("deposit_events.append", nil)
	f.reserve(t, constants.ReservationConfirmed, 15, 18, 300_000)
}

func TestCheckInRequiresSecuredDeposit(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)

	_, err := f.svc.Reservations.CheckIn(f.ctx, f.agent, r.ID)
	assertCode(t, err, errors.ErrCodeDepositRequired)

	if _, err := f.svc.Deposits.Collect(f.ctx, f.finance, r.ID, dto.CollectDepositRequest{Method: constants.DepositMethodCash}); err != nil {
		t.Fatalf("collect: %v", err)
	}
	checkedIn, err := f.svc.Reservations.CheckIn(f.ctx, f.agent, r.ID)
	if err != nil {
		t.Fatalf("check-in after collect: %v", err)
	}
	if checkedIn.Status != constants.ReservationCheckedIn || checkedIn.CheckedInAt == nil {
		t.Fatalf("unexpected reservation after check-in: %+v", checkedIn)
	}
}

func TestCheckInDepositBypass(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)
	if _, err := f.svc.Reservations.CheckIn(f.ctx, f.admin, r.ID); err != nil {
		t.Fatalf("admin check-in should bypass deposit gating: %v", err)
	}

	o := newFixture(t, func(opts *Options) { opts.DepositCheckInOverride = true })
	r = o.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)
	if _, err := o.svc.Reservations.CheckIn(o.ctx, o.agent, r.ID); err != nil {
		t.Fatalf("override should allow check-in: %v", err)
	}
}

func TestCheckInWithoutDepositAndInvalidState(t *testing.T) {
	f := newFixture(t)
	draft := f.reserve(t, constants.ReservationDraft, 15, 18, 0)
	_, err := f.svc.Reservations.CheckIn(f.ctx, f.agent, draft.ID)
	assertCode(t, err, errors.ErrCodeInvalidTransition)

	confirmed := f.reserve(t, constants.ReservationConfirmed, 20, 22, 0)
	if _, err := f.svc.Reservations.CheckIn(f.ctx, f.agent, confirmed.ID); err != nil {
		t.Fatalf("check-in without deposit: %v", err)
	}
}

func TestCheckOutCreatesExactlyOneCleaningTask(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)
	if _, err := f.svc.Reservations.CheckIn(f.ctx, f.agent, r.ID); err != nil {
		t.Fatal(err)
	}
	out, err := f.svc.Reservations.CheckOut(f.ctx, f.agent, r.ID)
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if out.Status != constants.ReservationCheckedOut {
		t.Fatalf("expected CHECKED_OUT, got %s", out.Status)
	}

	_, err = f.svc.Reservations.CheckOut(f.ctx, f.agent, r.ID)
	assertCode(t, err, errors.ErrCodeInvalidTransition)

	tasks, total, err := f.store.CleaningTasks().List(f.ctx, repositories.CleaningTaskFilter{ReservationID: r.ID})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Fatalf("expected exactly one cleaning task, got %d", total)
	}
	if tasks[0].Status != constants.CleaningPending || tasks[0].UnitID != f.unit.ID {
		t.Fatalf("unexpected task: %+v", tasks[0])
	}
}

func TestCheckOutRollsBackWhenTaskCreationFails(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)
	if _, err := f.svc.Reservations.CheckIn(f.ctx, f.agent, r.ID); err != nil {
		t.Fatal(err)
	}
	f.store.FailOn("cleaning_tasks.create", errBoom)
	if _, err := f.svc.Reservations.CheckOut(f.ctx, f.agent, r.ID); err == nil {
		t.Fatal("expected check-out to fail")
	}
	got, _ := f.svc.Reservations.Get(f.ctx, r.ID)
	if got.Status != constants.ReservationCheckedIn {
		t.Fatalf("status should stay CHECKED_IN, got %s", got.Status)
	}
}

func TestDeleteOnlyDraftOrCanceled(t *testing.T) {
	f := newFixture(t)
	confirmed := f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)
	assertCode(t, f.svc.Reservations.Delete(f.ctx, confirmed.ID), errors.ErrCodeInvalidTransition)

	draft := f.reserve(t, constants.ReservationDraft, 20, 22, 0)
	if err := f.svc.Reservations.Delete(f.ctx, draft.ID); err != nil {
		t.Fatalf("delete draft: %v", err)
	}
	_, err := f.svc.Reservations.Get(f.ctx, draft.ID)
	assertKind(t, err, errors.KindNotFound)

	withDeposit := f.reserve(t, constants.ReservationDraft, 24, 26, 200_000)
	if _, err := f.svc.Reservations.Cancel(f.ctx, withDeposit.ID, ""); err != nil {
		t.Fatal(err)
	}
	assertCode(t, f.svc.Reservations.Delete(f.ctx, withDeposit.ID), errors.ErrCodeImmutable)
}

func TestCancelTerminalStatesRejected(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationDraft, 15, 18, 0)
	if _, err := f.svc.Reservations.Cancel(f.ctx, r.ID, "trùng"); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.Reservations.Cancel(f.ctx, r.ID, "lần hai")
	assertCode(t, err, errors.ErrCodeInvalidTransition)
}
