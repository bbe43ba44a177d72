package services

import (
	"context"
	"strings"

	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/logger"

	"github.com/lib/pq"
)

type UnitService struct {
	store        repositories.Store
	availability *AvailabilityService
	logger       logger.Logger
}

func NewUnitService(opts Options, availability *AvailabilityService) *UnitService {
	opts.withDefaults()
	if availability == nil {
		availability = NewAvailabilityService(opts.Store)
	}
	return &UnitService{store: opts.Store, availability: availability, logger: opts.Logger}
}

func (s *UnitService) List(ctx context.Context, q dto.UnitListQuery) ([]models.Unit, int64, error) {
	p := q.Normalize()
	return s.store.Units().List(ctx, repositories.UnitFilter{
		Page:       repositories.Page{Page: p.Page, Limit: p.Limit},
		LocationID: q.LocationID,
		Active:     q.Active,
		Query:      strings.TrimSpace(q.Query),
	})
}

func (s *UnitService) Get(ctx context.Context, id uint) (*models.Unit, error) {
	return s.store.Units().FindByID(ctx, id)
}

func (s *UnitService) Create(ctx context.Context, in dto.CreateUnitRequest) (*models.Unit, error) {
	if _, err := s.store.Locations().FindByID(ctx, in.LocationID); err != nil {
		return nil, err
	}
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, errors.Validation(errors.ErrCodeRequiredField, "Mã phòng không được để trống")
	}
	capacity := in.Capacity
	if capacity <= 0 {
		capacity = 1
	}
	unit := &models.Unit{
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		LocationID:  in.LocationID,
		Type:        in.Type,
		Capacity:    capacity,
		BasePrice:   in.BasePrice,
		Amenities:   pq.StringArray(in.Amenities),
		Description: in.Description,
		Active:      true,
	}
	if err := s.store.Units().Create(ctx, unit); err != nil {
		return nil, err
	}
	s.logger.Info("tạo phòng %s tại cơ sở %d", unit.Code, unit.LocationID)
	return unit, nil
}

func (s *UnitService) Update(ctx context.Context, id uint, in dto.UpdateUnitRequest) (*models.Unit, error) {
	unit, err := s.store.Units().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.LocationID != nil && *in.LocationID != unit.LocationID {
		if _, err := s.store.Locations().FindByID(ctx, *in.LocationID); err != nil {
			return nil, err
		}
		unit.LocationID = *in.LocationID
		unit.Location = nil
	}
	if in.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*in.Code))
		if code == "" {
			return nil, errors.Validation(errors.ErrCodeRequiredField, "Mã phòng không được để trống")
		}
		unit.Code = code
	}
	if in.Name != nil {
		unit.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		unit.Type = *in.Type
	}
	if in.Capacity != nil {
		unit.Capacity = *in.Capacity
	}
	if in.BasePrice != nil {
		unit.BasePrice = *in.BasePrice
	}
	if in.Amenities != nil {
		unit.Amenities = pq.StringArray(*in.Amenities)
	}
	if in.Description != nil {
		unit.Description = *in.Description
	}
	if in.Active != nil {
		unit.Active = *in.Active
	}
	if err := s.store.Units().Save(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// Deactivate ngừng kinh doanh phòng; đơn cũ vẫn giữ nguyên
func (s *UnitService) Deactivate(ctx context.Context, id uint) (*models.Unit, error) {
	inactive := false
	return s.Update(ctx, id, dto.UpdateUnitRequest{Active: &inactive})
}

func (s *UnitService) Availability(ctx context.Context, id uint, q dto.AvailabilityQuery) (*dto.AvailabilityResponse, error) {
	return s.availability.Check(ctx, id, q)
}
