package repositories

import (
	"context"

	apperrors "homestay/errors"
	"homestay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type locationRepository struct {
	db *gorm.DB
}

func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(location).Error, nil)
}

func (r *locationRepository) Save(ctx context.Context, location *models.Location) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(location).Error, nil)
}

func (r *locationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Location{}, id)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrLocationNotFound
	}
	return nil
}

func (r *locationRepository) FindByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).Preload("Units", func(db *gorm.DB) *gorm.DB {
		return db.Order("code ASC")
	}).First(&location, id).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrLocationNotFound)
	}
	return &location, nil
}

func (r *locationRepository) List(ctx context.Context, filter LocationFilter) ([]models.Location, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Location{})
	if filter.Query != "" {
		q := likePattern(filter.Query)
		query = query.Where("name ILIKE ? OR city ILIKE ? OR address ILIKE ?", q, q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	var locations []models.Location
	if err := paginate(query, filter.Page).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	return locations, total, nil
}
