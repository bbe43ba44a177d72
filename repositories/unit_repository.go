package repositories

import (
	"context"

	apperrors "homestay/errors"
	"homestay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type unitRepository struct {
	db *gorm.DB
}

func (r *unitRepository) Create(ctx context.Context, unit *models.Unit) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(unit).Error, nil)
}

func (r *unitRepository) Save(ctx context.Context, unit *models.Unit) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(unit).Error, nil)
}

func (r *unitRepository) FindByID(ctx context.Context, id uint) (*models.Unit, error) {
	var unit models.Unit
	if err := r.db.WithContext(ctx).Preload("Location").First(&unit, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrUnitNotFound)
	}
	return &unit, nil
}

func (r *unitRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Unit, error) {
	var unit models.Unit
	if err := forUpdate(r.db.WithContext(ctx)).First(&unit, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrUnitNotFound)
	}
	return &unit, nil
}

func (r *unitRepository) List(ctx context.Context, filter UnitFilter) ([]models.Unit, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Unit{})
	if filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Query != "" {
		q := likePattern(filter.Query)
		query = query.Where("code ILIKE ? OR name ILIKE ?", q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	var units []models.Unit
	if err := paginate(query, filter.Page).Preload("Location").Order("code ASC").Find(&units).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	return units, total, nil
}

func (r *unitRepository) CountByLocation(ctx context.Context, locationID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Unit{}).Where("location_id = ?", locationID).Count(&total).Error
	return total, translate(err, nil)
}
