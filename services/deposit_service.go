package services

import (
	"context"
	"strings"
	"time"

	"homestay/constants"
	"homestay/dto"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/events"
	"homestay/services/logger"
)

type DepositService struct {
	store     repositories.Store
	dashboard *DashboardService
	publisher events.Publisher
	logger    logger.Logger
	now       func() time.Time
}

func NewDepositService(opts Options, dashboard *DashboardService) *DepositService {
	opts.withDefaults()
	if dashboard == nil {
		dashboard = NewDashboardService(opts)
	}
	return &DepositService{
		store:     opts.Store,
		dashboard: dashboard,
		publisher: opts.Publisher,
		logger:    opts.Logger,
		now:       opts.Now,
	}
}

// depositTransition mô tả một thao tác trên tiền cọc và dòng sổ cọc đi kèm
type depositTransition struct {
	eventType   constants.DepositEventType
	amount      int64
	method      string
	txnID       string
	reason      string
	evidenceURL string
	apply       func(state models.DepositState, r *models.Reservation, at time.Time) error
}

func newDepositEvent(r *models.Reservation, t depositTransition, actor Actor, at time.Time) *models.DepositEvent {
	return &models.DepositEvent{
		ReservationID: r.ID,
		Type:          t.eventType,
		Amount:        t.amount,
		Method:        t.method,
		TxnID:         t.txnID,
		Reason:        t.reason,
		EvidenceURL:   t.evidenceURL,
		StatusAfter:   r.DepositStatus,
		ActorID:       actor.IDPtr(),
		CreatedAt:     at,
	}
}

// applyDeposit chạy trong transaction: khóa đơn, chuyển trạng thái, lưu đơn và ghi đúng một dòng sổ cọc
func applyDeposit(ctx context.Context, tx repositories.Store, reservationID uint, t depositTransition, actor Actor, at time.Time) (*models.Reservation, *models.DepositEvent, error) {
	r, err := tx.Reservations().FindByIDForUpdate(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	if err := t.apply(models.GetDepositState(r.DepositStatus), r, at); err != nil {
		return nil, nil, err
	}
	if t.eventType == constants.DepositEventCollect {
		t.amount = r.DepositAmount
	}
	if err := tx.Reservations().Save(ctx, r); err != nil {
		return nil, nil, err
	}
	event := newDepositEvent(r, t, actor, at)
	if err := tx.DepositEvents().Append(ctx, event); err != nil {
		return nil, nil, err
	}
	return r, event, nil
}

func (s *DepositService) transition(ctx context.Context, actor Actor, reservationID uint, t depositTransition) (*dto.DepositResult, error) {
	var (
		reservation *models.Reservation
		event       *models.DepositEvent
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		reservation, event, err = applyDeposit(ctx, tx, reservationID, t, actor, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.dashboard.Invalidate(ctx)
	s.logger.Info("đơn %s: %s cọc %d, trạng thái %s (user %d)",
		reservation.Code, t.eventType, event.Amount, reservation.DepositStatus, actor.ID)
	s.notify(ctx, reservation, event)
	return &dto.DepositResult{Reservation: reservation, Event: event}, nil
}

func (s *DepositService) notify(ctx context.Context, r *models.Reservation, e *models.DepositEvent) {
	publish(ctx, s.publisher, s.logger, events.DepositRoutingKey(string(e.Type)), events.DepositMessage{
		ReservationID:   r.ID,
		ReservationCode: r.Code,
		EventID:         e.ID,
		Type:            string(e.Type),
		Amount:          e.Amount,
		Status:          string(r.DepositStatus),
		ActorID:         e.ActorID,
		OccurredAt:      e.CreatedAt,
	})
}

// Request yêu cầu khách đặt cọc: NOT_REQUIRED -> PENDING
func (s *DepositService) Request(ctx context.Context, actor Actor, reservationID uint, in dto.RequestDepositRequest) (*dto.DepositResult, error) {
	return s.transition(ctx, actor, reservationID, depositTransition{
		eventType: constants.DepositEventRequest,
		amount:    in.Amount,
		reason:    strings.TrimSpace(in.Reason),
		apply: func(state models.DepositState, r *models.Reservation, at time.Time) error {
			return state.Request(r, in.Amount)
		},
	})
}

// Collect ghi nhận đã thu cọc: -> PAID
func (s *DepositService) Collect(ctx context.Context, actor Actor, reservationID uint, in dto.CollectDepositRequest) (*dto.DepositResult, error) {
	collection := models.DepositCollection{
		Method:      in.Method,
		TxnID:       strings.TrimSpace(in.TxnID),
		EvidenceURL: strings.TrimSpace(in.EvidenceURL),
	}
	return s.transition(ctx, actor, reservationID, depositTransition{
		eventType:   constants.DepositEventCollect,
		method:      collection.Method,
		txnID:       collection.TxnID,
		evidenceURL: collection.EvidenceURL,
		apply: func(state models.DepositState, r *models.Reservation, at time.Time) error {
			return state.Collect(r, collection, at)
		},
	})
}

// Refund hoàn một phần hoặc toàn bộ tiền cọc
func (s *DepositService) Refund(ctx context.Context, actor Actor, reservationID uint, in dto.RefundDepositRequest) (*dto.DepositResult, error) {
	return s.transition(ctx, actor, reservationID, depositTransition{
		eventType: constants.DepositEventRefund,
		amount:    in.Amount,
		method:    in.Method,
		txnID:     strings.TrimSpace(in.TxnID),
		reason:    strings.TrimSpace(in.Reason),
		apply: func(state models.DepositState, r *models.Reservation, at time.Time) error {
			return state.Refund(r, in.Amount)
		},
	})
}

// Forfeit giữ lại tiền cọc (khách không đến, hư hại...)
func (s *DepositService) Forfeit(ctx context.Context, actor Actor, reservationID uint, in dto.ForfeitDepositRequest) (*dto.DepositResult, error) {
	return s.transition(ctx, actor, reservationID, depositTransition{
		eventType: constants.DepositEventForfeit,
		amount:    in.Amount,
		reason:    strings.TrimSpace(in.Reason),
		apply: func(state models.DepositState, r *models.Reservation, at time.Time) error {
			return state.Forfeit(r, in.Amount)
		},
	})
}

// Fail đánh dấu khách không chuyển cọc: PENDING -> FAILED
func (s *DepositService) Fail(ctx context.Context, actor Actor, reservationID uint, in dto.FailDepositRequest) (*dto.DepositResult, error) {
	return s.transition(ctx, actor, reservationID, depositTransition{
		eventType: constants.DepositEventFail,
		reason:    strings.TrimSpace(in.Reason),
		apply: func(state models.DepositState, r *models.Reservation, at time.Time) error {
			return state.Fail(r)
		},
	})
}

// Events trả về sổ cọc của đơn theo thứ tự thời gian
func (s *DepositService) Events(ctx context.Context, reservationID uint) ([]models.DepositEvent, error) {
	if _, err := s.store.Reservations().FindByID(ctx, reservationID); err != nil {
		return nil, err
	}
	return s.store.DepositEvents().ListByReservation(ctx, reservationID)
}

// List các đơn có yêu cầu cọc
func (s *DepositService) List(ctx context.Context, q dto.DepositListQuery) ([]models.Reservation, int64, error) {
	p := q.Normalize()
	return s.store.Reservations().List(ctx, repositories.ReservationFilter{
		Page:          repositories.Page{Page: p.Page, Limit: p.Limit},
		DepositStatus: q.Status,
		DepositOnly:   true,
	})
}
