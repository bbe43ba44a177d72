package controllers

import (
	"homestay/dto"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) DashboardController {
	return DashboardController{Dashboard: dashboard}
}

func (d DashboardController) GetSummary(c *gin.Context) {
	var q dto.DashboardQuery
	if !bindQuery(c, &q) {
		return
	}
	summary, err := d.Dashboard.Summary(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, summary)
}

func (d DashboardController) GetSeries(c *gin.Context) {
	var q dto.DashboardQuery
	if !bindQuery(c, &q) {
		return
	}
	series, err := d.Dashboard.Series(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, series)
}
