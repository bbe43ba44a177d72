package services

import (
	"context"
	"strings"
	"time"

	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
)

type AvailabilityService struct {
	store repositories.Store
}

func NewAvailabilityService(store repositories.Store) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// Conflicts trả về các đơn CONFIRMED/CHECKED_IN của unit giao với [checkIn, checkOut)
func (s *AvailabilityService) Conflicts(ctx context.Context, unitID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error) {
	return findConflicts(ctx, s.store, unitID, checkIn, checkOut, excludeID)
}

func (s *AvailabilityService) IsAvailable(ctx context.Context, unitID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	conflicts, err := s.Conflicts(ctx, unitID, checkIn, checkOut, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Check kiểm tra phòng trống cho endpoint GET /units/:id/availability
func (s *AvailabilityService) Check(ctx context.Context, unitID uint, q dto.AvailabilityQuery) (*dto.AvailabilityResponse, error) {
	checkIn, err := dto.ParseTime(q.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := dto.ParseTime(q.CheckOut)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Units().FindByID(ctx, unitID); err != nil {
		return nil, err
	}
	conflicts, err := s.Conflicts(ctx, unitID, checkIn, checkOut, q.ExcludeReservationID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ConflictItem, 0, len(conflicts))
	for _, r := range conflicts {
		items = append(items, dto.ConflictItem{
			ID:       r.ID,
			Code:     r.Code,
			CheckIn:  r.CheckIn,
			CheckOut: r.CheckOut,
			Status:   r.Status,
		})
	}
	return &dto.AvailabilityResponse{
		UnitID:    unitID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Available: len(items) == 0,
		Conflicts: items,
	}, nil
}

func findConflicts(ctx context.Context, store repositories.Store, unitID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error) {
	if err := models.ValidateInterval(checkIn, checkOut); err != nil {
		return nil, err
	}
	return store.Reservations().FindOverlapping(ctx, unitID, checkIn, checkOut, excludeID)
}

// ensureAvailable khóa unit rồi kiểm tra lại trùng lịch; phải chạy trong transaction
func ensureAvailable(ctx context.Context, tx repositories.Store, unitID uint, checkIn, checkOut time.Time, excludeID uint) (*models.Unit, error) {
	unit, err := tx.Units().FindByIDForUpdate(ctx, unitID)
	if err != nil {
		return nil, err
	}
	conflicts, err := findConflicts(ctx, tx, unitID, checkIn, checkOut, excludeID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, unavailableError(conflicts)
	}
	return unit, nil
}

func unavailableError(conflicts []models.Reservation) error {
	codes := make([]string, 0, len(conflicts))
	for _, r := range conflicts {
		codes = append(codes, r.Code)
	}
	return errors.NewAppError(errors.KindConflict, errors.ErrCodeUnitUnavailable,
		errors.ErrUnitUnavailable.Message+" (trùng với "+strings.Join(codes, ", ")+")", nil)
}
