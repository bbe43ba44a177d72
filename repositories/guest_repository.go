package repositories

import (
	"context"

	apperrors "homestay/errors"
	"homestay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type guestRepository struct {
	db *gorm.DB
}

func (r *guestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(guest).Error, nil)
}

func (r *guestRepository) Save(ctx context.Context, guest *models.Guest) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(guest).Error, nil)
}

func (r *guestRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Guest{}, id)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGuestNotFound
	}
	return nil
}

func (r *guestRepository) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).First(&guest, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrGuestNotFound)
	}
	return &guest, nil
}

// List trả về danh sách khách; tìm kiếm gần đúng theo tên được xử lý ở tầng service
func (r *guestRepository) List(ctx context.Context, filter GuestFilter) ([]models.Guest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Guest{})
	if filter.Query != "" {
		q := likePattern(filter.Query)
		query = query.Where("full_name ILIKE ? OR phone_number ILIKE ? OR email ILIKE ?", q, q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	var guests []models.Guest
	if err := paginate(query, filter.Page).Order("full_name ASC").Find(&guests).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	return guests, total, nil
}
