package controllers

import (
	"homestay/dto"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type LocationController struct {
	Locations *services.LocationService
}

func NewLocationController(locations *services.LocationService) LocationController {
	return LocationController{Locations: locations}
}

func (l LocationController) GetLocations(c *gin.Context) {
	var q dto.LocationListQuery
	if !bindQuery(c, &q) {
		return
	}
	locations, total, err := l.Locations.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	paginated(c, locations, q.PageQuery, total)
}

func (l LocationController) GetLocationByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	location, err := l.Locations.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, location)
}

// SuggestLocation gợi ý tên khu vực gần đúng cho ô tìm kiếm
func (l LocationController) SuggestLocation(c *gin.Context) {
	suggestion, err := l.Locations.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, suggestion)
}

func (l LocationController) CreateLocation(c *gin.Context) {
	var in dto.CreateLocationRequest
	if !bindJSON(c, &in) {
		return
	}
	location, err := l.Locations.Create(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, location)
}

func (l LocationController) UpdateLocation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.UpdateLocationRequest
	if !bindJSON(c, &in) {
		return
	}
	location, err := l.Locations.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, location)
}

func (l LocationController) DeleteLocation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := l.Locations.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}
