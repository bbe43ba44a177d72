package repositories

import (
	"context"

	"homestay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// depositEventRepository chỉ hỗ trợ thêm mới và đọc; sổ cọc không được sửa
type depositEventRepository struct {
	db *gorm.DB
}

func (r *depositEventRepository) Append(ctx context.Context, event *models.DepositEvent) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error, nil)
}

func (r *depositEventRepository) ListByReservation(ctx context.Context, reservationID uint) ([]models.DepositEvent, error) {
	var events []models.DepositEvent
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("reservation_id = ?", reservationID).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	return events, translate(err, nil)
}

func (r *depositEventRepository) CountByReservation(ctx context.Context, reservationID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.DepositEvent{}).Where("reservation_id = ?", reservationID).Count(&total).Error
	return total, translate(err, nil)
}
