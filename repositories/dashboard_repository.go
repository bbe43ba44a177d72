package repositories

import (
	"context"
	"time"

	"homestay/constants"
	"homestay/models"

	"gorm.io/gorm"
)

type dashboardRepository struct {
	db *gorm.DB
}

func (r *dashboardRepository) Totals(ctx context.Context, from, to time.Time) (*DashboardTotals, error) {
	db := r.db.WithContext(ctx)
	totals := &DashboardTotals{StatusCounts: map[constants.ReservationStatus]int64{}}

	var counts []struct {
		Status constants.ReservationStatus
		Total  int64
	}
	err := db.Model(&models.Reservation{}).
		Select("status, COUNT(*) AS total").
		Where("check_in < ? AND check_out > ?", to, from).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	for _, c := range counts {
		totals.StatusCounts[c.Status] = c.Total
	}

	if err := db.Model(&models.Reservation{}).
		Where("check_in >= ? AND check_in < ? AND status <> ?", from, to, constants.ReservationCanceled).
		Count(&totals.Arrivals).Error; err != nil {
		return nil, translate(err, nil)
	}
	if err := db.Model(&models.Reservation{}).
		Where("check_out >= ? AND check_out < ? AND status <> ?", from, to, constants.ReservationCanceled).
		Count(&totals.Departures).Error; err != nil {
		return nil, translate(err, nil)
	}

	var revenue struct {
		Revenue      int64
		CleaningFees int64
	}
	err = db.Model(&models.Reservation{}).
		Select("COALESCE(SUM(total_amount + cleaning_fee), 0) AS revenue, COALESCE(SUM(cleaning_fee), 0) AS cleaning_fees").
		Where("check_in >= ? AND check_in < ? AND status <> ?", from, to, constants.ReservationCanceled).
		Scan(&revenue).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	totals.Revenue = revenue.Revenue
	totals.CleaningFees = revenue.CleaningFees

	err = db.Model(&models.Reservation{}).
		Select("COALESCE(SUM(deposit_amount - deposit_refund_amt - deposit_forfeit_amt), 0)").
		Where("deposit_status IN ?", []constants.DepositStatus{constants.DepositHeld, constants.DepositPaid, constants.DepositPartiallyRefunded}).
		Scan(&totals.DepositsHeld).Error
	if err != nil {
		return nil, translate(err, nil)
	}

	err = db.Model(&models.CleaningTask{}).
		Where("status NOT IN ?", []constants.CleaningStatus{constants.CleaningDone, constants.CleaningFailed}).
		Count(&totals.OpenCleaningTasks).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return totals, nil
}

// Series gom nhóm theo date_trunc trên giờ địa phương của loc
func (r *dashboardRepository) Series(ctx context.Context, from, to time.Time, period constants.Period, loc *time.Location) ([]SeriesRow, error) {
	var rows []SeriesRow
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Select("date_trunc(?, check_in AT TIME ZONE ?) AS bucket, COUNT(*) AS reservations, COALESCE(SUM(total_amount + cleaning_fee), 0) AS revenue",
			string(period), loc.String()).
		Where("check_in >= ? AND check_in < ? AND status <> ?", from, to, constants.ReservationCanceled).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return rows, nil
}
