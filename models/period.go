package models

import (
	"time"

	"homestay/constants"
)

// TruncatePeriod làm tròn t về đầu ngày, đầu tuần (thứ Hai) hoặc đầu tháng theo múi giờ loc,
// cùng quy ước với date_trunc của postgres.
func TruncatePeriod(t time.Time, period constants.Period, loc *time.Location) time.Time {
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	switch period {
	case constants.PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case constants.PeriodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return day
	}
}

// NextPeriod trả về mốc bắt đầu của kỳ kế tiếp
func NextPeriod(start time.Time, period constants.Period) time.Time {
	switch period {
	case constants.PeriodWeek:
		return start.AddDate(0, 0, 7)
	case constants.PeriodMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}
