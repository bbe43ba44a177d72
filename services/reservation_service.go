package services

import (
	"context"
	"strings"
	"time"

	"homestay/builders"
	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/events"
	"homestay/services/logger"
	"homestay/validator"
)

type ReservationService struct {
	store     repositories.Store
	dashboard *DashboardService
	publisher events.Publisher
	logger    logger.Logger
	now       func() time.Time
	// depositOverride cho phép mọi role check-in khi chưa thu cọc
	depositOverride bool
}

func NewReservationService(opts Options, dashboard *DashboardService) *ReservationService {
	opts.withDefaults()
	if dashboard == nil {
		dashboard = NewDashboardService(opts)
	}
	return &ReservationService{
		store:           opts.Store,
		dashboard:       dashboard,
		publisher:       opts.Publisher,
		logger:          opts.Logger,
		now:             opts.Now,
		depositOverride: opts.DepositCheckInOverride,
	}
}

func validateAmounts(amounts ...int64) error {
	for _, amount := range amounts {
		if err := validator.ValidateAmount(amount); err != nil {
			return err
		}
	}
	return nil
}

// Create tạo đơn DRAFT hoặc CONFIRMED; depositAmount > 0 thì yêu cầu cọc luôn trong cùng transaction
func (s *ReservationService) Create(ctx context.Context, actor Actor, in dto.CreateReservationRequest) (*models.Reservation, error) {
	checkIn, checkOut := in.CheckIn.Time, in.CheckOut.Time
	if err := models.ValidateInterval(checkIn, checkOut); err != nil {
		return nil, err
	}
	if err := validateAmounts(in.TotalAmount, in.CleaningFee, in.DepositAmount); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = constants.ReservationDraft
	}
	if status != constants.ReservationDraft && status != constants.ReservationConfirmed {
		return nil, errors.Validation(errors.ErrCodeInvalidStatus, "Đơn mới chỉ được ở trạng thái DRAFT hoặc CONFIRMED")
	}

	reservation := builders.NewReservationBuilder().
		ForUnit(in.UnitID, in.GuestID).
		WithStay(checkIn, checkOut).
		WithStatus(status).
		WithAmounts(in.TotalAmount, in.CleaningFee).
		WithNotes(in.Notes).
		CreatedBy(actor.IDPtr()).
		Build()
	var event *models.DepositEvent

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var (
			unit *models.Unit
			err  error
		)
		if status.IsActive() {
			unit, err = ensureAvailable(ctx, tx, in.UnitID, checkIn, checkOut, 0)
		} else {
			unit, err = tx.Units().FindByIDForUpdate(ctx, in.UnitID)
		}
		if err != nil {
			return err
		}
		if !unit.Active {
			return errors.ErrUnitInactive
		}
		if _, err := tx.Guests().FindByID(ctx, in.GuestID); err != nil {
			return err
		}

		if in.DepositAmount > 0 {
			if err := models.GetDepositState(reservation.DepositStatus).Request(reservation, in.DepositAmount); err != nil {
				return err
			}
		}
		if err := tx.Reservations().Create(ctx, reservation); err != nil {
			return err
		}
		if in.DepositAmount > 0 {
			event = newDepositEvent(reservation, depositTransition{
				eventType: constants.DepositEventRequest,
				amount:    in.DepositAmount,
			}, actor, s.now())
			return tx.DepositEvents().Append(ctx, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dashboard.Invalidate(ctx)
	s.logger.Info("tạo đơn %s (%s) cho phòng %d", reservation.Code, reservation.Status, reservation.UnitID)
	if event != nil {
		publish(ctx, s.publisher, s.logger, events.DepositRoutingKey(string(event.Type)), events.DepositMessage{
			ReservationID:   reservation.ID,
			ReservationCode: reservation.Code,
			EventID:         event.ID,
			Type:            string(event.Type),
			Amount:          event.Amount,
			Status:          string(reservation.DepositStatus),
			ActorID:         event.ActorID,
			OccurredAt:      event.CreatedAt,
		})
	}
	return s.store.Reservations().FindByID(ctx, reservation.ID)
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.store.Reservations().FindByID(ctx, id)
}

func (s *ReservationService) List(ctx context.Context, q dto.ReservationListQuery) ([]models.Reservation, int64, error) {
	p := q.Normalize()
	filter := repositories.ReservationFilter{
		Page:          repositories.Page{Page: p.Page, Limit: p.Limit},
		Status:        q.Status,
		DepositStatus: q.DepositStatus,
		UnitID:        q.UnitID,
		GuestID:       q.GuestID,
		LocationID:    q.LocationID,
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, errors.Validation(errors.ErrCodeInvalidStatus, "Trạng thái đơn không hợp lệ")
	}
	if q.DepositStatus != "" && !q.DepositStatus.Valid() {
		return nil, 0, errors.Validation(errors.ErrCodeInvalidStatus, "Trạng thái cọc không hợp lệ")
	}
	if q.From != "" {
		from, err := dto.ParseTime(q.From)
		if err != nil {
			return nil, 0, err
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := dto.ParseTime(q.To)
		if err != nil {
			return nil, 0, err
		}
		filter.To = &to
	}
	return s.store.Reservations().List(ctx, filter)
}

// mutate khóa đơn, chạy fn rồi lưu lại trong cùng một transaction
func (s *ReservationService) mutate(ctx context.Context, id uint, fn func(tx repositories.Store, r *models.Reservation, at time.Time) error) (*models.Reservation, error) {
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		r, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(tx, r, s.now()); err != nil {
			return err
		}
		return tx.Reservations().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	s.dashboard.Invalidate(ctx)
	return s.store.Reservations().FindByID(ctx, id)
}

// Update sửa đơn DRAFT/CONFIRMED; đổi ngày hoặc phòng thì kiểm tra lại trùng lịch (bỏ qua chính nó)
func (s *ReservationService) Update(ctx context.Context, id uint, in dto.UpdateReservationRequest) (*models.Reservation, error) {
	return s.mutate(ctx, id, func(tx repositories.Store, r *models.Reservation, at time.Time) error {
		if !models.GetReservationState(r.Status).Editable() {
			return errors.Conflict(errors.ErrCodeInvalidTransition, "Chỉ sửa được đơn ở trạng thái DRAFT hoặc CONFIRMED")
		}
		rescheduled := false
		if in.UnitID != nil && *in.UnitID != r.UnitID {
			r.UnitID = *in.UnitID
			r.Unit = nil
			rescheduled = true
		}
		if in.CheckIn != nil && !in.CheckIn.Time.Equal(r.CheckIn) {
			r.CheckIn = in.CheckIn.Time
			rescheduled = true
		}
		if in.CheckOut != nil && !in.CheckOut.Time.Equal(r.CheckOut) {
			r.CheckOut = in.CheckOut.Time
			rescheduled = true
		}
		if err := models.ValidateInterval(r.CheckIn, r.CheckOut); err != nil {
			return err
		}
		if in.GuestID != nil && *in.GuestID != r.GuestID {
			if _, err := tx.Guests().FindByID(ctx, *in.GuestID); err != nil {
				return err
			}
			r.GuestID = *in.GuestID
			r.Guest = nil
		}
		if in.TotalAmount != nil {
			r.TotalAmount = *in.TotalAmount
		}
		if in.CleaningFee != nil {
			r.CleaningFee = *in.CleaningFee
		}
		if err := validateAmounts(r.TotalAmount, r.CleaningFee); err != nil {
			return err
		}
		if in.Notes != nil {
			r.Notes = strings.TrimSpace(*in.Notes)
		}

		if !rescheduled {
			return nil
		}
		var (
			unit *models.Unit
			err  error
		)
		if r.Status.IsActive() {
			unit, err = ensureAvailable(ctx, tx, r.UnitID, r.CheckIn, r.CheckOut, r.ID)
		} else {
			unit, err = tx.Units().FindByIDForUpdate(ctx, r.UnitID)
		}
		if err != nil {
			return err
		}
		if !unit.Active {
			return errors.ErrUnitInactive
		}
		return nil
	})
}

// Confirm DRAFT -> CONFIRMED, bắt đầu giữ phòng
func (s *ReservationService) Confirm(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.mutate(ctx, id, func(tx repositories.Store, r *models.Reservation, at time.Time) error {
		if err := models.GetReservationState(r.Status).Confirm(r); err != nil {
			return err
		}
		unit, err := ensureAvailable(ctx, tx, r.UnitID, r.CheckIn, r.CheckOut, r.ID)
		if err != nil {
			return err
		}
		if !unit.Active {
			return errors.ErrUnitInactive
		}
		return nil
	})
}

// CheckIn CONFIRMED -> CHECKED_IN; đơn yêu cầu cọc phải HELD/PAID trừ khi là ADMIN hoặc bật override
func (s *ReservationService) CheckIn(ctx context.Context, actor Actor, id uint) (*models.Reservation, error) {
	return s.mutate(ctx, id, func(tx repositories.Store, r *models.Reservation, at time.Time) error {
		if r.Status == constants.ReservationConfirmed && r.DepositRequired && !r.DepositStatus.Secured() {
			switch {
			case actor.IsAdmin():
				s.logger.Warn("admin %d check-in đơn %s khi cọc đang %s", actor.ID, r.Code, r.DepositStatus)
			case s.depositOverride:
				s.logger.Warn("check-in đơn %s khi cọc đang %s (override)", r.Code, r.DepositStatus)
			default:
				return errors.ErrDepositRequired
			}
		}
		return models.GetReservationState(r.Status).CheckIn(r, at)
	})
}

// CheckOut CHECKED_IN -> CHECKED_OUT và tạo đúng một công việc dọn phòng PENDING
func (s *ReservationService) CheckOut(ctx context.Context, actor Actor, id uint) (*models.Reservation, error) {
	var task *models.CleaningTask
	r, err := s.mutate(ctx, id, func(tx repositories.Store, r *models.Reservation, at time.Time) error {
		if err := models.GetReservationState(r.Status).CheckOut(r, at); err != nil {
			return err
		}
		task = &models.CleaningTask{
			ReservationID: r.ID,
			UnitID:        r.UnitID,
			Status:        constants.CleaningPending,
		}
		return tx.CleaningTasks().Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("đơn %s trả phòng, tạo công việc dọn phòng %d (user %d)", r.Code, task.ID, actor.ID)
	checkedOutAt := s.now()
	if r.CheckedOutAt != nil {
		checkedOutAt = *r.CheckedOutAt
	}
	publish(ctx, s.publisher, s.logger, events.ReservationCheckedOut, events.CheckoutMessage{
		ReservationID:   r.ID,
		ReservationCode: r.Code,
		UnitID:          r.UnitID,
		CleaningTaskID:  task.ID,
		CheckedOutAt:    checkedOutAt,
	})
	return r, nil
}

// Extend dời ngày trả phòng về sau, kiểm tra trùng lịch với các đơn khác
func (s *ReservationService) Extend(ctx context.Context, id uint, newCheckOut time.Time) (*models.Reservation, error) {
	return s.mutate(ctx, id, func(tx repositories.Store, r *models.Reservation, at time.Time) error {
		if err := models.GetReservationState(r.Status).Extend(r, newCheckOut); err != nil {
			return err
		}
		_, err := ensureAvailable(ctx, tx, r.UnitID, r.CheckIn, r.CheckOut, r.ID)
		return err
	})
}

func (s *ReservationService) Cancel(ctx context.Context, id uint, reason string) (*models.Reservation, error) {
	return s.mutate(ctx, id, func(tx repositories.Store, r *models.Reservation, at time.Time) error {
		return models.GetReservationState(r.Status).Cancel(r, strings.TrimSpace(reason), at)
	})
}

// Delete chỉ xóa đơn DRAFT/CANCELED chưa phát sinh sổ cọc
func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		r, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !models.GetReservationState(r.Status).Deletable() {
			return errors.Conflict(errors.ErrCodeInvalidTransition, "Chỉ xóa được đơn ở trạng thái DRAFT hoặc CANCELED")
		}
		n, err := tx.DepositEvents().CountByReservation(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errors.Conflict(errors.ErrCodeImmutable, "Đơn đã có lịch sử tiền cọc, không thể xóa")
		}
		return tx.Reservations().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.dashboard.Invalidate(ctx)
	return nil
}
