package dto

import (
	"time"

	"homestay/constants"
)

type DashboardQuery struct {
	From   string           `form:"from"`
	To     string           `form:"to"`
	Period constants.Period `form:"period" binding:"omitempty,period"`
}

type DashboardSummary struct {
	From              time.Time        `json:"from"`
	To                time.Time        `json:"to"`
	StatusCounts      map[string]int64 `json:"statusCounts"`
	Arrivals          int64            `json:"arrivals"`
	Departures        int64            `json:"departures"`
	Revenue           int64            `json:"revenue"`
	CleaningFees      int64            `json:"cleaningFees"`
	DepositsHeld      int64            `json:"depositsHeld"`
	OpenCleaningTasks int64            `json:"openCleaningTasks"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}

type SeriesPoint struct {
	Start        time.Time `json:"start"`
	Label        string    `json:"label"`
	Reservations int64     `json:"reservations"`
	Revenue      int64     `json:"revenue"`
}

type DashboardSeries struct {
	Period constants.Period `json:"period"`
	From   time.Time        `json:"from"`
	To     time.Time        `json:"to"`
	Points []SeriesPoint    `json:"points"`
}
