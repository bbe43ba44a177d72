package controllers

import (
	"homestay/dto"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) GuestController {
	return GuestController{Guests: guests}
}

// GetGuests tìm khách theo tên, số điện thoại hoặc email (cho phép gõ không dấu, sai chính tả nhẹ)
func (g GuestController) GetGuests(c *gin.Context) {
	var q dto.GuestListQuery
	if !bindQuery(c, &q) {
		return
	}
	guests, total, err := g.Guests.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	paginated(c, guests, q.PageQuery, total)
}

func (g GuestController) GetGuestByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	guest, err := g.Guests.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, guest)
}

func (g GuestController) CreateGuest(c *gin.Context) {
	var in dto.CreateGuestRequest
	if !bindJSON(c, &in) {
		return
	}
	guest, err := g.Guests.Create(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, guest)
}

func (g GuestController) UpdateGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.UpdateGuestRequest
	if !bindJSON(c, &in) {
		return
	}
	guest, err := g.Guests.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, guest)
}

func (g GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := g.Guests.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}
