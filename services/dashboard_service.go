package services

import (
	"context"
	"fmt"
	"time"

	"homestay/constants"
	"homestay/dto"
	"homestay/errors"
	"homestay/models"
	"homestay/repositories"
	"homestay/services/logger"
)

const (
	dashboardCachePrefix = "dashboard:"
	// maxSeriesPoints giới hạn số mốc của một chuỗi thống kê
	maxSeriesPoints = 400
)

type DashboardService struct {
	store  repositories.Store
	cache  Cache
	logger logger.Logger
	now    func() time.Time
	loc    *time.Location
	ttl    time.Duration
}

func NewDashboardService(opts Options) *DashboardService {
	opts.withDefaults()
	return &DashboardService{
		store:  opts.Store,
		cache:  opts.Cache,
		logger: opts.Logger,
		now:    opts.Now,
		loc:    opts.Location,
		ttl:    opts.DashboardCacheTTL,
	}
}

// today trả về [00:00 hôm nay, 00:00 ngày mai) theo múi giờ cấu hình
func (s *DashboardService) today() (time.Time, time.Time) {
	start := models.TruncatePeriod(s.now(), constants.PeriodDay, s.loc)
	return start, start.AddDate(0, 0, 1)
}

// parseRange đọc from/to; thiếu from thì lấy defaultFrom, thiếu to thì lấy from + defaultSpan
func (s *DashboardService) parseRange(q dto.DashboardQuery, defaultFrom time.Time, defaultSpan func(time.Time) time.Time) (time.Time, time.Time, error) {
	from := defaultFrom
	if q.From != "" {
		t, err := dto.ParseTime(q.From)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	to := defaultSpan(from)
	if q.To != "" {
		t, err := dto.ParseTime(q.To)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, errors.Validation(errors.ErrCodeInvalidInterval, "Thời điểm bắt đầu phải trước thời điểm kết thúc")
	}
	return from, to, nil
}

// Summary số liệu tổng hợp trong [from, to), mặc định là hôm nay
func (s *DashboardService) Summary(ctx context.Context, q dto.DashboardQuery) (*dto.DashboardSummary, error) {
	start, _ := s.today()
	from, to, err := s.parseRange(q, start, func(t time.Time) time.Time { return t.AddDate(0, 0, 1) })
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%ssummary:%d:%d", dashboardCachePrefix, from.Unix(), to.Unix())
	var cached dto.DashboardSummary
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}
	summary, err := s.computeSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, key, summary)
	return summary, nil
}

func (s *DashboardService) computeSummary(ctx context.Context, from, to time.Time) (*dto.DashboardSummary, error) {
	totals, err := s.store.Dashboard().Totals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(constants.ReservationStatuses))
	for _, status := range constants.ReservationStatuses {
		counts[string(status)] = totals.StatusCounts[status]
	}
	return &dto.DashboardSummary{
		From:              from,
		To:                to,
		StatusCounts:      counts,
		Arrivals:          totals.Arrivals,
		Departures:        totals.Departures,
		Revenue:           totals.Revenue,
		CleaningFees:      totals.CleaningFees,
		DepositsHeld:      totals.DepositsHeld,
		OpenCleaningTasks: totals.OpenCleaningTasks,
		GeneratedAt:       s.now(),
	}, nil
}

// Series thống kê số đơn và doanh thu theo ngày/tuần/tháng, kỳ trống vẫn có mặt với giá trị 0
func (s *DashboardService) Series(ctx context.Context, q dto.DashboardQuery) (*dto.DashboardSeries, error) {
	period := q.Period
	if period == "" {
		period = constants.PeriodDay
	}
	if !period.Valid() {
		return nil, errors.Validation(errors.ErrCodeValidation, "period phải là day, week hoặc month")
	}

	_, end := s.today()
	defaultFrom := end.AddDate(0, 0, -30)
	from, to, err := s.parseRange(q, defaultFrom, func(time.Time) time.Time { return end })
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%sseries:%s:%d:%d", dashboardCachePrefix, period, from.Unix(), to.Unix())
	var cached dto.DashboardSeries
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	var points []dto.SeriesPoint
	index := map[int64]int{}
	for start := models.TruncatePeriod(from, period, s.loc); start.Before(to); start = models.NextPeriod(start, period) {
		if len(points) >= maxSeriesPoints {
			return nil, errors.Validation(errors.ErrCodeInvalidInterval, "Khoảng thời gian quá lớn cho kỳ thống kê đã chọn")
		}
		index[start.Unix()] = len(points)
		points = append(points, dto.SeriesPoint{Start: start, Label: periodLabel(start, period)})
	}

	rows, err := s.store.Dashboard().Series(ctx, from, to, period, s.loc)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		// bucket do date_trunc trả về là giờ địa phương không kèm múi giờ
		b := row.Bucket
		bucket := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, s.loc)
		if i, ok := index[bucket.Unix()]; ok {
			points[i].Reservations += row.Reservations
			points[i].Revenue += row.Revenue
		}
	}

	series := &dto.DashboardSeries{Period: period, From: from, To: to, Points: points}
	s.writeCache(ctx, key, series)
	return series, nil
}

func periodLabel(start time.Time, period constants.Period) string {
	switch period {
	case constants.PeriodWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case constants.PeriodMonth:
		return start.Format("2006-01")
	default:
		return start.Format("2006-01-02")
	}
}

// RefreshToday tính lại số liệu hôm nay và ghi đè cache, dùng cho cron
func (s *DashboardService) RefreshToday(ctx context.Context) (*dto.DashboardSummary, error) {
	from, to := s.today()
	summary, err := s.computeSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, fmt.Sprintf("%ssummary:%d:%d", dashboardCachePrefix, from.Unix(), to.Unix()), summary)
	return summary, nil
}

// Invalidate xóa toàn bộ cache dashboard sau mỗi thay đổi dữ liệu
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, dashboardCachePrefix); err != nil {
		s.logger.Error("xóa cache dashboard thất bại: %v", err)
	}
}

func (s *DashboardService) readCache(ctx context.Context, key string, target interface{}) bool {
	found, err := s.cache.Get(ctx, key, target)
	if err != nil {
		s.logger.Error("đọc cache %s thất bại: %v", key, err)
		return false
	}
	return found
}

func (s *DashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Error("ghi cache %s thất bại: %v", key, err)
	}
}
