package services

import (
	"testing"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
	"homestay/models"
)

func checkDepositBounds(t *testing.T, r *models.Reservation) {
	t.Helper()
	if r.DepositRefundAmt < 0 || r.DepositForfeitAmt < 0 {
		t.Fatalf("negative settlement: %+v", r)
	}
	if r.DepositRefundAmt+r.DepositForfeitAmt > r.DepositAmount {
		t.Fatalf("refund %d + forfeit %d exceeds deposit %d", r.DepositRefundAmt, r.DepositForfeitAmt, r.DepositAmount)
	}
}

func TestDepositRequestCollectRefund(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)

	res, err := f.svc.Deposits.Request(f.ctx, f.finance, r.ID, dto.RequestDepositRequest{Amount: 1_000_000, Reason: "cọc 30%"})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.Reservation.DepositStatus != constants.DepositPending || res.Event.StatusAfter != constants.DepositPending {
		t.Fatalf("expected PENDING, got %+v", res)
	}

	res, err = f.svc.Deposits.Collect(f.ctx, f.finance, r.ID, dto.CollectDepositRequest{
		Method: constants.DepositMethodBankTransfer, TxnID: "FT2401", EvidenceURL: "/uploads/deposits/a.png",
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Reservation.DepositStatus != constants.DepositPaid || res.Reservation.DepositPaidAt == nil {
		t.Fatalf("expected PAID with paidAt set, got %+v", res.Reservation)
	}
	if res.Event.Amount != 1_000_000 || res.Event.TxnID != "FT2401" {
		t.Fatalf("collect event not recorded properly: %+v", res.Event)
	}

	res, err = f.svc.Deposits.Refund(f.ctx, f.finance, r.ID, dto.RefundDepositRequest{Amount: 400_000})
	if err != nil {
		t.Fatalf("first refund: %v", err)
	}
	if res.Reservation.DepositStatus != constants.DepositPartiallyRefunded {
		t.Fatalf("expected PARTIALLY_REFUNDED, got %s", res.Reservation.DepositStatus)
	}
	checkDepositBounds(t, res.Reservation)

	res, err = f.svc.Deposits.Refund(f.ctx, f.finance, r.ID, dto.RefundDepositRequest{Amount: 600_000})
	if err != nil {
		t.Fatalf("second refund: %v", err)
	}
	if res.Reservation.DepositStatus != constants.DepositRefunded || res.Reservation.DepositRefundAmt != 1_000_000 {
		t.Fatalf("expected REFUNDED with full refund, got %+v", res.Reservation)
	}
	checkDepositBounds(t, res.Reservation)

	_, err = f.svc.Deposits.Refund(f.ctx, f.finance, r.ID, dto.RefundDepositRequest{Amount: 1})
	assertKind(t, err, errors.KindConflict)

	events, err := f.svc.Deposits.Events(f.ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []constants.DepositEventType{
		constants.DepositEventRequest,
		constants.DepositEventCollect,
		constants.DepositEventRefund,
		constants.DepositEventRefund,
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, e := range events {
		if e.Type != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], e.Type)
		}
		if e.ActorID == nil || *e.ActorID != f.finance.ID {
			t.Errorf("event %d: actor not recorded", i)
		}
	}
}

func TestRefundExceedingBalanceLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)
	if _, err := f.svc.Deposits.Collect(f.ctx, f.finance, r.ID, dto.CollectDepositRequest{Method: constants.DepositMethodCash}); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Deposits.Refund(f.ctx, f.finance, r.ID, dto.RefundDepositRequest{Amount: 500_001})
	assertCode(t, err, errors.ErrCodeAmountExceeded)

	got, _ := f.svc.Reservations.Get(f.ctx, r.ID)
	if got.DepositStatus != constants.DepositPaid || got.DepositRefundAmt != 0 {
		t.Fatalf("state changed after rejected refund: %+v", got)
	}
	events, _ := f.svc.Deposits.Events(f.ctx, r.ID)
	if len(events) != 2 {
		t.Fatalf("rejected refund must not append an event, got %d events", len(events))
	}
}

func TestFailOnlyFromPendingDeposit(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)
	if _, err := f.svc.Deposits.Collect(f.ctx, f.finance, r.ID, dto.CollectDepositRequest{Method: constants.DepositMethodCard}); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.Deposits.Fail(f.ctx, f.finance, r.ID, dto.FailDepositRequest{Reason: "quá hạn"})
	assertCode(t, err, errors.ErrCodeInvalidTransition)

	pending := f.reserve(t, constants.ReservationConfirmed, 20, 22, 300_000)
	res, err := f.svc.Deposits.Fail(f.ctx, f.finance, pending.ID, dto.FailDepositRequest{Reason: "quá hạn"})
	if err != nil {
		t.Fatalf("fail pending deposit: %v", err)
	}
	if res.Reservation.DepositStatus != constants.DepositFailed {
		t.Fatalf("expected FAILED, got %s", res.Reservation.DepositStatus)
	}

	res, err = f.svc.Deposits.Collect(f.ctx, f.finance, pending.ID, dto.CollectDepositRequest{Method: constants.DepositMethodCash})
	if err != nil {
		t.Fatalf("collect after failure: %v", err)
	}
	if res.Reservation.DepositStatus != constants.DepositPaid {
		t.Fatalf("expected PAID, got %s", res.Reservation.DepositStatus)
	}
}

func TestCollectTwiceRejected(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)
	in := dto.CollectDepositRequest{Method: constants.DepositMethodCash}
	if _, err := f.svc.Deposits.Collect(f.ctx, f.finance, r.ID, in); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.Deposits.Collect(f.ctx, f.finance, r.ID, in)
	assertCode(t, err, errors.ErrCodeInvalidTransition)

	noDeposit := f.reserve(t, constants.ReservationConfirmed, 20, 22, 0)
	_, err = f.svc.Deposits.Collect(f.ctx, f.finance, noDeposit.ID, in)
	assertCode(t, err, errors.ErrCodeInvalidTransition)
}

func TestForfeitDeposit(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)
	if _, err := f.svc.Deposits.Collect(f.ctx, f.finance, r.ID, dto.CollectDepositRequest{Method: constants.DepositMethodCash}); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.Deposits.Forfeit(f.ctx, f.finance, r.ID, dto.ForfeitDepositRequest{Amount: 600_000, Reason: "no-show"})
	assertCode(t, err, errors.ErrCodeAmountExceeded)

	res, err := f.svc.Deposits.Forfeit(f.ctx, f.finance, r.ID, dto.ForfeitDepositRequest{Amount: 500_000, Reason: "no-show"})
	if err != nil {
		t.Fatalf("forfeit: %v", err)
	}
	if res.Reservation.DepositStatus != constants.DepositForfeited || res.Reservation.DepositForfeitAmt != 500_000 {
		t.Fatalf("unexpected forfeit result: %+v", res.Reservation)
	}
	checkDepositBounds(t, res.Reservation)
}

func TestDepositTransitionRollsBackWhenEventAppendFails(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)

	f.store.FailOn("deposit_events.append", errBoom)
	_, err := f.svc.Deposits.Collect(f.ctx, f.finance, r.ID, dto.CollectDepositRequest{Method: constants.DepositMethodCash})
	assertKind(t, err, errors.KindUnexpected)
	f.store.FailOn("deposit_events.append", nil)

	got, _ := f.svc.Reservations.Get(f.ctx, r.ID)
	if got.DepositStatus != constants.DepositPending || got.DepositPaidAt != nil {
		t.Fatalf("reservation must be unchanged after rollback: %+v", got)
	}
	events, _ := f.svc.Deposits.Events(f.ctx, r.ID)
	if len(events) != 1 {
		t.Fatalf("expected only the request event, got %d", len(events))
	}
}

func TestDepositListOnlyRequiredDeposits(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, constants.ReservationConfirmed, 15, 18, 500_000)
	f.reserve(t, constants.ReservationConfirmed, 20, 22, 0)

	items, total, err := f.svc.Deposits.List(f.ctx, dto.DepositListQuery{Status: constants.DepositPending})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(items) != 1 || !items[0].DepositRequired {
		t.Fatalf("expected one reservation with deposit, got %d", total)
	}
}
