package jobs

import (
	"context"
	"time"

	"homestay/dto"
	"homestay/services/logger"

	"github.com/robfig/cron/v3"
)

// DashboardSchedule chạy đầu mỗi giờ
const DashboardSchedule = "0 * * * *"

// DashboardRefresher tính lại số liệu dashboard hôm nay
type DashboardRefresher interface {
	RefreshToday(ctx context.Context) (*dto.DashboardSummary, error)
}

// InitCronJobs đăng ký các cron job, caller tự gọi c.Start()
func InitCronJobs(c *cron.Cron, refresher DashboardRefresher, log logger.Logger) error {
	_, err := c.AddFunc(DashboardSchedule, func() {
		RefreshDashboard(context.Background(), refresher, log)
	})
	return err
}

// RefreshDashboard chỉ đọc dữ liệu và ghi cache, không thay đổi trạng thái nghiệp vụ
func RefreshDashboard(ctx context.Context, refresher DashboardRefresher, log logger.Logger) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	summary, err := refresher.RefreshToday(ctx)
	if err != nil {
		log.Error("cập nhật dashboard thất bại: %v", err)
		return
	}
	log.Info("dashboard %s: %d khách đến, %d khách đi, %d việc dọn phòng chưa xong",
		summary.From.Format("2006-01-02"), summary.Arrivals, summary.Departures, summary.OpenCleaningTasks)
}
