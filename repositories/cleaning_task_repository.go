package repositories

import (
	"context"

	apperrors "homestay/errors"
	"homestay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cleaningTaskRepository struct {
	db *gorm.DB
}

func (r *cleaningTaskRepository) Create(ctx context.Context, task *models.CleaningTask) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error, nil)
}

func (r *cleaningTaskRepository) Save(ctx context.Context, task *models.CleaningTask) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error, nil)
}

func (r *cleaningTaskRepository) FindByID(ctx context.Context, id uint) (*models.CleaningTask, error) {
	var task models.CleaningTask
	err := r.db.WithContext(ctx).
		Preload("Unit").
		Preload("AssignedTo").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&task, id).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrCleaningNotFound)
	}
	return &task, nil
}

func (r *cleaningTaskRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.CleaningTask, error) {
	var task models.CleaningTask
	if err := forUpdate(r.db.WithContext(ctx)).First(&task, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrCleaningNotFound)
	}
	return &task, nil
}

func (r *cleaningTaskRepository) List(ctx context.Context, filter CleaningTaskFilter) ([]models.CleaningTask, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CleaningTask{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AssignedToID != 0 {
		query = query.Where("assigned_to_id = ?", filter.AssignedToID)
	}
	if filter.UnitID != 0 {
		query = query.Where("unit_id = ?", filter.UnitID)
	}
	if filter.ReservationID != 0 {
		query = query.Where("reservation_id = ?", filter.ReservationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	var tasks []models.CleaningTask
	err := paginate(query, filter.Page).
		Preload("Unit").
		Preload("AssignedTo").
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, translate(err, nil)
	}
	return tasks, total, nil
}

func (r *cleaningTaskRepository) AddPhotos(ctx context.Context, photos []models.CleaningPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Create(&photos).Error, nil)
}
