package services

import (
	"context"
	"strings"

	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/logger"
	"homestay/validator"
)

type GuestService struct {
	store  repositories.Store
	logger logger.Logger
}

func NewGuestService(opts Options) *GuestService {
	opts.withDefaults()
	return &GuestService{store: opts.Store, logger: opts.Logger}
}

func normalizeEmail(email string) (*string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	if err := validator.ValidateEmail(email); err != nil {
		return nil, err
	}
	return &email, nil
}

// List tìm khách gần đúng theo tên (không phân biệt dấu), số điện thoại hoặc email
func (s *GuestService) List(ctx context.Context, q dto.GuestListQuery) ([]models.Guest, int64, error) {
	p := q.Normalize()
	query := strings.TrimSpace(q.Query)
	if query == "" {
		return s.store.Guests().List(ctx, repositories.GuestFilter{
			Page: repositories.Page{Page: p.Page, Limit: p.Limit},
		})
	}

	all, _, err := s.store.Guests().List(ctx, repositories.GuestFilter{})
	if err != nil {
		return nil, 0, err
	}
	ranked := RankGuests(query, all)
	total := int64(len(ranked))
	start := p.Page * p.Limit
	if start >= len(ranked) {
		return []models.Guest{}, total, nil
	}
	end := start + p.Limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[start:end], total, nil
}

// Get trả về khách kèm lịch sử đặt phòng
func (s *GuestService) Get(ctx context.Context, id uint) (*models.Guest, error) {
	guest, err := s.store.Guests().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reservations, _, err := s.store.Reservations().List(ctx, repositories.ReservationFilter{GuestID: id})
	if err != nil {
		return nil, err
	}
	guest.Reservations = reservations
	return guest, nil
}

func (s *GuestService) Create(ctx context.Context, in dto.CreateGuestRequest) (*models.Guest, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, errors.Validation(errors.ErrCodeRequiredField, "Tên khách không được để trống")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidatePhone(in.PhoneNumber); err != nil {
		return nil, err
	}
	guest := &models.Guest{
		FullName:    name,
		Email:       email,
		PhoneNumber: in.PhoneNumber,
		IDNumber:    strings.TrimSpace(in.IDNumber),
		Nationality: strings.TrimSpace(in.Nationality),
		Notes:       in.Notes,
	}
	if err := s.store.Guests().Create(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) Update(ctx context.Context, id uint, in dto.UpdateGuestRequest) (*models.Guest, error) {
	guest, err := s.store.Guests().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, errors.Validation(errors.ErrCodeRequiredField, "Tên khách không được để trống")
		}
		guest.FullName = name
	}
	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		guest.Email = email
	}
	if in.PhoneNumber != nil {
		if err := validator.ValidatePhone(*in.PhoneNumber); err != nil {
			return nil, err
		}
		guest.PhoneNumber = *in.PhoneNumber
	}
	if in.IDNumber != nil {
		guest.IDNumber = strings.TrimSpace(*in.IDNumber)
	}
	if in.Nationality != nil {
		guest.Nationality = strings.TrimSpace(*in.Nationality)
	}
	if in.Notes != nil {
		guest.Notes = *in.Notes
	}
	if err := s.store.Guests().Save(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// Delete chỉ xóa được khách chưa có đơn đặt phòng nào
func (s *GuestService) Delete(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Guests().FindByID(ctx, id); err != nil {
			return err
		}
		n, err := tx.Reservations().CountByGuest(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errors.Conflict(errors.ErrCodeInUse, "Khách đã có đơn đặt phòng, không thể xóa")
		}
		return tx.Guests().Delete(ctx, id)
	})
}
