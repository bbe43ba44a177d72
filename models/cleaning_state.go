package models

import (
	"fmt"
	"time"

	"homestay/constants"
	apperrors "homestay/errors"
)

// CleaningState định nghĩa interface cho các trạng thái dọn phòng
type CleaningState interface {
	Assign(t *CleaningTask, userID uint, at time.Time) error
	Start(t *CleaningTask, at time.Time) error
	Complete(t *CleaningTask, at time.Time) error
	Fail(t *CleaningTask, reason string, at time.Time) error
	AcceptsPhotos() bool
}

func invalidCleaningTransition(status constants.CleaningStatus, action string) error {
	return apperrors.Conflict(apperrors.ErrCodeInvalidTransition,
		fmt.Sprintf("Không thể %s công việc ở trạng thái %s", action, status))
}

type cleaningStateBase struct {
	status constants.CleaningStatus
}

func (s cleaningStateBase) Assign(t *CleaningTask, userID uint, at time.Time) error {
	return invalidCleaningTransition(s.status, "giao")
}

func (s cleaningStateBase) Start(t *CleaningTask, at time.Time) error {
	return invalidCleaningTransition(s.status, "bắt đầu")
}

func (s cleaningStateBase) Complete(t *CleaningTask, at time.Time) error {
	return invalidCleaningTransition(s.status, "hoàn thành")
}

func (s cleaningStateBase) Fail(t *CleaningTask, reason string, at time.Time) error {
	return invalidCleaningTransition(s.status, "đánh dấu thất bại")
}

func (s cleaningStateBase) AcceptsPhotos() bool { return false }

func assignCleaning(t *CleaningTask, userID uint, at time.Time) error {
	t.AssignedToID = &userID
	t.AssignedTo = nil
	t.AssignedAt = &at
	t.Status = constants.CleaningAssigned
	return nil
}

func failCleaning(t *CleaningTask, reason string, at time.Time) error {
	t.Status = constants.CleaningFailed
	t.FailReason = reason
	t.FailedAt = &at
	return nil
}

type PendingCleaningState struct{ cleaningStateBase }

func (s PendingCleaningState) Assign(t *CleaningTask, userID uint, at time.Time) error {
	return assignCleaning(t, userID, at)
}

func (s PendingCleaningState) Fail(t *CleaningTask, reason string, at time.Time) error {
	return failCleaning(t, reason, at)
}

type AssignedCleaningState struct{ cleaningStateBase }

func (s AssignedCleaningState) Assign(t *CleaningTask, userID uint, at time.Time) error {
	return assignCleaning(t, userID, at)
}

func (s AssignedCleaningState) Start(t *CleaningTask, at time.Time) error {
	t.Status = constants.CleaningInProgress
	t.StartedAt = &at
	return nil
}

func (s AssignedCleaningState) Fail(t *CleaningTask, reason string, at time.Time) error {
	return failCleaning(t, reason, at)
}

func (s AssignedCleaningState) AcceptsPhotos() bool { return true }

type InProgressCleaningState struct{ cleaningStateBase }

func (s InProgressCleaningState) Complete(t *CleaningTask, at time.Time) error {
	t.Status = constants.CleaningDone
	t.CompletedAt = &at
	return nil
}

func (s InProgressCleaningState) Fail(t *CleaningTask, reason string, at time.Time) error {
	return failCleaning(t, reason, at)
}

func (s InProgressCleaningState) AcceptsPhotos() bool { return true }

// GetCleaningState trả về state tương ứng; DONE và FAILED không cho thao tác nào
func GetCleaningState(status constants.CleaningStatus) CleaningState {
	base := cleaningStateBase{status: status}
	switch status {
	case constants.CleaningPending:
		return PendingCleaningState{base}
	case constants.CleaningAssigned:
		return AssignedCleaningState{base}
	case constants.CleaningInProgress:
		return InProgressCleaningState{base}
	default:
		return base
	}
}
