package controllers

import (
	"homestay/dto"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type UnitController struct {
	Units *services.UnitService
}

func NewUnitController(units *services.UnitService) UnitController {
	return UnitController{Units: units}
}

func (u UnitController) GetUnits(c *gin.Context) {
	var q dto.UnitListQuery
	if !bindQuery(c, &q) {
		return
	}
	units, total, err := u.Units.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	paginated(c, units, q.PageQuery, total)
}

func (u UnitController) GetUnitByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	unit, err := u.Units.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, unit)
}

func (u UnitController) CreateUnit(c *gin.Context) {
	var in dto.CreateUnitRequest
	if !bindJSON(c, &in) {
		return
	}
	unit, err := u.Units.Create(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, unit)
}

func (u UnitController) UpdateUnit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.UpdateUnitRequest
	if !bindJSON(c, &in) {
		return
	}
	unit, err := u.Units.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, unit)
}

// DeactivateUnit ngừng nhận đặt phòng, các đơn cũ vẫn giữ nguyên
func (u UnitController) DeactivateUnit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	unit, err := u.Units.Deactivate(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, unit)
}

func (u UnitController) GetAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var q dto.AvailabilityQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := u.Units.Availability(c.Request.Context(), id, q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}
