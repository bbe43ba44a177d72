package services

import (
	"context"
	"strings"

	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/logger"
)

type LocationService struct {
	store  repositories.Store
	logger logger.Logger
}

func NewLocationService(opts Options) *LocationService {
	opts.withDefaults()
	return &LocationService{store: opts.Store, logger: opts.Logger}
}

func (s *LocationService) List(ctx context.Context, q dto.LocationListQuery) ([]models.Location, int64, error) {
	p := q.Normalize()
	return s.store.Locations().List(ctx, repositories.LocationFilter{
		Page:  repositories.Page{Page: p.Page, Limit: p.Limit},
		Query: strings.TrimSpace(q.Query),
	})
}

func (s *LocationService) Get(ctx context.Context, id uint) (*models.Location, error) {
	return s.store.Locations().FindByID(ctx, id)
}

func (s *LocationService) Create(ctx context.Context, in dto.CreateLocationRequest) (*models.Location, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.Validation(errors.ErrCodeRequiredField, "Tên cơ sở không được để trống")
	}
	location := &models.Location{
		Name:        name,
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
		Description: in.Description,
	}
	if err := s.store.Locations().Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) Update(ctx context.Context, id uint, in dto.UpdateLocationRequest) (*models.Location, error) {
	location, err := s.store.Locations().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, errors.Validation(errors.ErrCodeRequiredField, "Tên cơ sở không được để trống")
		}
		location.Name = name
	}
	if in.Address != nil {
		location.Address = strings.TrimSpace(*in.Address)
	}
	if in.City != nil {
		location.City = strings.TrimSpace(*in.City)
	}
	if in.Description != nil {
		location.Description = *in.Description
	}
	if err := s.store.Locations().Save(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete chỉ xóa được cơ sở không còn phòng nào
func (s *LocationService) Delete(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Locations().FindByID(ctx, id); err != nil {
			return err
		}
		units, err := tx.Units().CountByLocation(ctx, id)
		if err != nil {
			return err
		}
		if units > 0 {
			return errors.Conflict(errors.ErrCodeInUse, "Cơ sở vẫn còn phòng, không thể xóa")
		}
		return tx.Locations().Delete(ctx, id)
	})
}

// Suggest gợi ý tên cơ sở hoặc thành phố gần nhất với từ khóa
func (s *LocationService) Suggest(ctx context.Context, query string) (*dto.LocationSuggestion, error) {
	locations, _, err := s.store.Locations().List(ctx, repositories.LocationFilter{})
	if err != nil {
		return nil, err
	}
	candidates := make([]string, 0, len(locations)*2)
	for _, l := range locations {
		candidates = append(candidates, l.Name)
		if l.City != "" {
			candidates = append(candidates, l.City)
		}
	}
	return &dto.LocationSuggestion{Query: query, Suggestion: ClosestMatch(query, candidates)}, nil
}
