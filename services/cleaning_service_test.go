package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func (f *fixture) checkedOutTask(t *testing.T) *models.CleaningTask {
	t.Helper()
	r := f.reserve(t, constants.ReservationConfirmed, 15, 18, 0)
	if _, err := f.svc.Reservations.CheckIn(f.ctx, f.agent, r.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Reservations.CheckOut(f.ctx, f.agent, r.ID); err != nil {
		t.Fatal(err)
	}
	tasks, _, err := f.store.CleaningTasks().List(f.ctx, repositories.CleaningTaskFilter{ReservationID: r.ID})
	if err != nil || len(tasks) != 1 {
		t.Fatalf("expected cleaning task, got %v %v", tasks, err)
	}
	return &tasks[0]
}

func TestAssignRequiresActiveCleaner(t *testing.T) {
	f := newFixture(t)
	task := f.checkedOutTask(t)

	_, err := f.svc.Cleaning.Assign(f.ctx, task.ID, f.agent.ID)
	assertKind(t, err, errors.KindValidation)

	inactive := f.addUser(t, "old-cleaner@homestay.vn", constants.RoleCleaner)
	off := false
	if _, err := f.svc.Users.Update(f.ctx, f.admin, inactive.ID, dto.UpdateUserRequest{IsActive: &off}); err != nil {
		t.Fatal(err)
	}
	_, err = f.svc.Cleaning.Assign(f.ctx, task.ID, inactive.ID)
	assertKind(t, err, errors.KindValidation)

	assigned, err := f.svc.Cleaning.Assign(f.ctx, task.ID, f.cleaner.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.Status != constants.CleaningAssigned || !assigned.IsAssignedTo(f.cleaner.ID) || assigned.AssignedAt == nil {
		t.Fatalf("unexpected task after assign: %+v", assigned)
	}

	other := f.addUser(t, "cleaner2@homestay.vn", constants.RoleCleaner)
	reassigned, err := f.svc.Cleaning.Assign(f.ctx, task.ID, other.ID)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if !reassigned.IsAssignedTo(other.ID) {
		t.Fatal("task not reassigned")
	}
}

func TestCleaningWorkflowAssigneeOnly(t *testing.T) {
	f := newFixture(t)
	task := f.checkedOutTask(t)
	if _, err := f.svc.Cleaning.Assign(f.ctx, task.ID, f.cleaner.ID); err != nil {
		t.Fatal(err)
	}
	other := f.addUser(t, "cleaner2@homestay.vn", constants.RoleCleaner)

	_, err := f.svc.Cleaning.Start(f.ctx, other, task.ID)
	assertKind(t, err, errors.KindForbidden)

	_, err = f.svc.Cleaning.Complete(f.ctx, f.cleaner, task.ID, dto.CompleteCleaningRequest{})
	assertCode(t, err, errors.ErrCodeInvalidTransition)

	started, err := f.svc.Cleaning.Start(f.ctx, f.cleaner, task.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != constants.CleaningInProgress || started.StartedAt == nil {
		t.Fatalf("unexpected task after start: %+v", started)
	}

	done, err := f.svc.Cleaning.Complete(f.ctx, f.cleaner, task.ID, dto.CompleteCleaningRequest{
		PhotoURLs: []string{"/uploads/cleaning/a.jpg", " ", "/uploads/cleaning/b.jpg"},
		Notes:     "thay ga giường",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != constants.CleaningDone || len(done.Photos) != 2 || done.Notes != "thay ga giường" {
		t.Fatalf("unexpected task after complete: %+v", done)
	}

	_, err = f.svc.Cleaning.Fail(f.ctx, f.admin, task.ID, "muộn")
	assertCode(t, err, errors.ErrCodeInvalidTransition)
}

func TestCleaningFailOverride(t *testing.T) {
	f := newFixture(t)
	task := f.checkedOutTask(t)
	failed, err := f.svc.Cleaning.Fail(f.ctx, f.admin, task.ID, "hỏng máy giặt")
	if err != nil {
		t.Fatalf("fail: %v", err)
	}
	if failed.Status != constants.CleaningFailed || failed.FailReason != "hỏng máy giặt" {
		t.Fatalf("unexpected task after fail: %+v", failed)
	}
	_, err = f.svc.Cleaning.Assign(f.ctx, task.ID, f.cleaner.ID)
	assertCode(t, err, errors.ErrCodeInvalidTransition)
}

func TestCleanerSeesOnlyOwnTasks(t *testing.T) {
	f := newFixture(t)
	mine := f.checkedOutTask(t)
	if _, err := f.svc.Cleaning.Assign(f.ctx, mine.ID, f.cleaner.ID); err != nil {
		t.Fatal(err)
	}

	unassigned := f.reserve(t, constants.ReservationConfirmed, 20, 22, 0)
	if _, err := f.svc.Reservations.CheckIn(f.ctx, f.agent, unassigned.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Reservations.CheckOut(f.ctx, f.agent, unassigned.ID); err != nil {
		t.Fatal(err)
	}

	tasks, total, err := f.svc.Cleaning.List(f.ctx, f.cleaner, dto.CleaningListQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || tasks[0].ID != mine.ID {
		t.Fatalf("cleaner should see only assigned task, got %d", total)
	}

	_, total, _ = f.svc.Cleaning.List(f.ctx, f.admin, dto.CleaningListQuery{})
	if total != 2 {
		t.Fatalf("admin should see all tasks, got %d", total)
	}

	all, _, _ := f.svc.Cleaning.List(f.ctx, f.admin, dto.CleaningListQuery{Status: constants.CleaningPending})
	if len(all) != 1 {
		t.Fatalf("expected one pending task, got %d", len(all))
	}
	_, err = f.svc.Cleaning.Get(f.ctx, f.cleaner, all[0].ID)
	assertKind(t, err, errors.KindForbidden)
}

func TestAddPhotoStoresFile(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, func(opts *Options) {
		opts.Storage = storage.NewLocalStorage(dir, "http://localhost:8080")
	})
	task := f.checkedOutTask(t)

	_, err := f.svc.Cleaning.AddPhoto(f.ctx, f.cleaner, task.ID, int64(len(pngHeader)), bytes.NewReader(pngHeader))
	assertKind(t, err, errors.KindForbidden)

	if _, err := f.svc.Cleaning.Assign(f.ctx, task.ID, f.cleaner.ID); err != nil {
		t.Fatal(err)
	}
	photo, err := f.svc.Cleaning.AddPhoto(f.ctx, f.cleaner, task.ID, int64(len(pngHeader)), bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("add photo: %v", err)
	}
	if !strings.HasPrefix(photo.URL, "http://localhost:8080/uploads/cleaning/") || !strings.HasSuffix(photo.URL, ".png") {
		t.Fatalf("unexpected photo url %s", photo.URL)
	}
	if _, err := os.Stat(filepath.Join(dir, "cleaning", filepath.Base(photo.URL))); err != nil {
		t.Fatalf("photo not written: %v", err)
	}

	text := []byte("definitely not an image")
	_, err = f.svc.Cleaning.AddPhoto(f.ctx, f.cleaner, task.ID, int64(len(text)), bytes.NewReader(text))
	assertCode(t, err, errors.ErrCodeInvalidFile)

	got, _ := f.svc.Cleaning.Get(f.ctx, f.cleaner, task.ID)
	if len(got.Photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(got.Photos))
	}
}
