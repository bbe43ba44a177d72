package repositories

import (
	"context"
	"time"

	"homestay/constants"
	apperrors "homestay/errors"
	"homestay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reservationRepository struct {
	db *gorm.DB
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(reservation).Error, nil)
}

func (r *reservationRepository) Save(ctx context.Context, reservation *models.Reservation) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(reservation).Error, nil)
}

func (r *reservationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrReservationNotFound
	}
	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Unit").
		Preload("Unit.Location").
		Preload("Guest").
		First(&reservation, id).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrReservationNotFound)
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := forUpdate(r.db.WithContext(ctx)).First(&reservation, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrReservationNotFound)
	}
	return &reservation, nil
}

func (r *reservationRepository) FindOverlapping(ctx context.Context, unitID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Where("status IN ?", constants.ActiveReservationStatuses).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var reservations []models.Reservation
	if err := query.Order("check_in ASC").Find(&reservations).Error; err != nil {
		return nil, translate(err, nil)
	}
	return reservations, nil
}

func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Reservation{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DepositStatus != "" {
		query = query.Where("deposit_status = ?", filter.DepositStatus)
	}
	if filter.DepositOnly {
		query = query.Where("deposit_required = ?", true)
	}
	if filter.UnitID != 0 {
		query = query.Where("unit_id = ?", filter.UnitID)
	}
	if filter.GuestID != 0 {
		query = query.Where("guest_id = ?", filter.GuestID)
	}
	if filter.LocationID != 0 {
		query = query.Where("unit_id IN (?)", r.db.Model(&models.Unit{}).Select("id").Where("location_id = ?", filter.LocationID))
	}
	if filter.From != nil {
		query = query.Where("check_out > ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("check_in < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	var reservations []models.Reservation
	err := paginate(query, filter.Page).
		Preload("Unit").
		Preload("Guest").
		Order("check_in DESC, id DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, 0, translate(err, nil)
	}
	return reservations, total, nil
}

func (r *reservationRepository) CountByGuest(ctx context.Context, guestID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).Where("guest_id = ?", guestID).Count(&total).Error
	return total, translate(err, nil)
}
