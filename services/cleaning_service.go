package services

import (
	"context"
	"io"
	"strings"
	"time"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/events"
	"homestay/services/logger"
)

type CleaningService struct {
	store     repositories.Store
	dashboard *DashboardService
	uploads   *UploadService
	publisher events.Publisher
	logger    logger.Logger
	now       func() time.Time
}

func NewCleaningService(opts Options, dashboard *DashboardService) *CleaningService {
	opts.withDefaults()
	if dashboard == nil {
		dashboard = NewDashboardService(opts)
	}
	return &CleaningService{
		store:     opts.Store,
		dashboard: dashboard,
		uploads:   NewUploadService(opts),
		publisher: opts.Publisher,
		logger:    opts.Logger,
		now:       opts.Now,
	}
}

// List công việc dọn phòng; CLEANER chỉ thấy việc được giao cho mình
func (s *CleaningService) List(ctx context.Context, actor Actor, q dto.CleaningListQuery) ([]models.CleaningTask, int64, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, errors.Validation(errors.ErrCodeInvalidStatus, "Trạng thái công việc không hợp lệ")
	}
	p := q.Normalize()
	filter := repositories.CleaningTaskFilter{
		Page:         repositories.Page{Page: p.Page, Limit: p.Limit},
		Status:       q.Status,
		AssignedToID: q.AssignedToID,
		UnitID:       q.UnitID,
	}
	if actor.Role == constants.RoleCleaner {
		filter.AssignedToID = actor.ID
	}
	return s.store.CleaningTasks().List(ctx, filter)
}

func (s *CleaningService) Get(ctx context.Context, actor Actor, id uint) (*models.CleaningTask, error) {
	task, err := s.store.CleaningTasks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == constants.RoleCleaner && !task.IsAssignedTo(actor.ID) {
		return nil, errors.ErrNotAssignee
	}
	return task, nil
}

func (s *CleaningService) mutate(ctx context.Context, id uint, fn func(tx repositories.Store, t *models.CleaningTask, at time.Time) error) (*models.CleaningTask, error) {
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		t, err := tx.CleaningTasks().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(tx, t, s.now()); err != nil {
			return err
		}
		return tx.CleaningTasks().Save(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	s.dashboard.Invalidate(ctx)
	return s.store.CleaningTasks().FindByID(ctx, id)
}

// Assign giao hoặc giao lại việc cho một CLEANER đang hoạt động
func (s *CleaningService) Assign(ctx context.Context, id uint, userID uint) (*models.CleaningTask, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			return nil, errors.Validation(errors.ErrCodeValidation, "Người được giao không tồn tại")
		}
		return nil, err
	}
	if user.Role != constants.RoleCleaner || !user.IsActive {
		return nil, errors.Validation(errors.ErrCodeInvalidRole, "Chỉ giao việc cho nhân viên dọn phòng đang hoạt động")
	}
	task, err := s.mutate(ctx, id, func(tx repositories.Store, t *models.CleaningTask, at time.Time) error {
		return models.GetCleaningState(t.Status).Assign(t, userID, at)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("giao việc dọn phòng %d cho user %d", task.ID, userID)
	return task, nil
}

func (s *CleaningService) Start(ctx context.Context, actor Actor, id uint) (*models.CleaningTask, error) {
	return s.mutate(ctx, id, func(tx repositories.Store, t *models.CleaningTask, at time.Time) error {
		if !t.IsAssignedTo(actor.ID) {
			return errors.ErrNotAssignee
		}
		return models.GetCleaningState(t.Status).Start(t, at)
	})
}

// Complete IN_PROGRESS -> DONE, đính kèm ảnh đã upload
func (s *CleaningService) Complete(ctx context.Context, actor Actor, id uint, in dto.CompleteCleaningRequest) (*models.CleaningTask, error) {
	task, err := s.mutate(ctx, id, func(tx repositories.Store, t *models.CleaningTask, at time.Time) error {
		if !t.IsAssignedTo(actor.ID) {
			return errors.ErrNotAssignee
		}
		if err := models.GetCleaningState(t.Status).Complete(t, at); err != nil {
			return err
		}
		if notes := strings.TrimSpace(in.Notes); notes != "" {
			t.Notes = notes
		}
		photos := make([]models.CleaningPhoto, 0, len(in.PhotoURLs))
		for _, url := range in.PhotoURLs {
			if url = strings.TrimSpace(url); url != "" {
				photos = append(photos, models.CleaningPhoto{CleaningTaskID: t.ID, URL: url, UploadedByID: actor.IDPtr(), CreatedAt: at})
			}
		}
		if len(photos) == 0 {
			return nil
		}
		return tx.CleaningTasks().AddPhotos(ctx, photos)
	})
	if err != nil {
		return nil, err
	}

	completedAt := s.now()
	if task.CompletedAt != nil {
		completedAt = *task.CompletedAt
	}
	publish(ctx, s.publisher, s.logger, events.CleaningDone, events.CleaningMessage{
		TaskID:        task.ID,
		ReservationID: task.ReservationID,
		UnitID:        task.UnitID,
		AssignedToID:  task.AssignedToID,
		Photos:        len(task.Photos),
		CompletedAt:   completedAt,
	})
	return task, nil
}

// AddPhoto nhân viên được giao tải ảnh lên khi việc đang ASSIGNED/IN_PROGRESS
func (s *CleaningService) AddPhoto(ctx context.Context, actor Actor, id uint, size int64, r io.Reader) (*models.CleaningPhoto, error) {
	task, err := s.store.CleaningTasks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkPhotoUpload(task, actor); err != nil {
		return nil, err
	}

	uploaded, err := s.uploads.Upload(ctx, constants.UploadFolderCleaning, size, r)
	if err != nil {
		return nil, err
	}

	photo := models.CleaningPhoto{CleaningTaskID: id, URL: uploaded.URL, UploadedByID: actor.IDPtr(), CreatedAt: s.now()}
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		t, err := tx.CleaningTasks().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := checkPhotoUpload(t, actor); err != nil {
			return err
		}
		photos := []models.CleaningPhoto{photo}
		if err := tx.CleaningTasks().AddPhotos(ctx, photos); err != nil {
			return err
		}
		photo = photos[0]
		return nil
	})
	if err != nil {
		s.logger.Warn("ảnh %s đã upload nhưng không gắn được vào công việc %d: %v", uploaded.URL, id, err)
		return nil, err
	}
	return &photo, nil
}

func checkPhotoUpload(t *models.CleaningTask, actor Actor) error {
	if !t.IsAssignedTo(actor.ID) {
		return errors.ErrNotAssignee
	}
	if !models.GetCleaningState(t.Status).AcceptsPhotos() {
		return errors.Conflict(errors.ErrCodeInvalidTransition, "Chỉ tải ảnh khi công việc đang ASSIGNED hoặc IN_PROGRESS")
	}
	return nil
}

// Fail admin đánh dấu công việc thất bại từ mọi trạng thái chưa DONE
func (s *CleaningService) Fail(ctx context.Context, actor Actor, id uint, reason string) (*models.CleaningTask, error) {
	task, err := s.mutate(ctx, id, func(tx repositories.Store, t *models.CleaningTask, at time.Time) error {
		return models.GetCleaningState(t.Status).Fail(t, strings.TrimSpace(reason), at)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Warn("công việc dọn phòng %d bị đánh dấu thất bại bởi user %d: %s", task.ID, actor.ID, task.FailReason)
	return task, nil
}
