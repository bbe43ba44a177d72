package controllers

import (
	"homestay/dto"
	"homestay/models"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) ReservationController {
	return ReservationController{Reservations: reservations}
}

func (r ReservationController) GetReservations(c *gin.Context) {
	var q dto.ReservationListQuery
	if !bindQuery(c, &q) {
		return
	}
	reservations, total, err := r.Reservations.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	paginated(c, reservations, q.PageQuery, total)
}

func (r ReservationController) GetReservationByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	reservation, err := r.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, reservation)
}

func (r ReservationController) CreateReservation(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	var in dto.CreateReservationRequest
	if !bindJSON(c, &in) {
		return
	}
	reservation, err := r.Reservations.Create(c.Request.Context(), current, in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, reservation)
}

func (r ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.UpdateReservationRequest
	if !bindJSON(c, &in) {
		return
	}
	reservation, err := r.Reservations.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, reservation)
}

func (r ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := r.Reservations.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (r ReservationController) Confirm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r.respond(c)(r.Reservations.Confirm(c.Request.Context(), id))
}

func (r ReservationController) CheckIn(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	r.respond(c)(r.Reservations.CheckIn(c.Request.Context(), current, id))
}

func (r ReservationController) CheckOut(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	r.respond(c)(r.Reservations.CheckOut(c.Request.Context(), current, id))
}

func (r ReservationController) Extend(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.ExtendReservationRequest
	if !bindJSON(c, &in) {
		return
	}
	r.respond(c)(r.Reservations.Extend(c.Request.Context(), id, in.CheckOut.Time))
}

func (r ReservationController) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.CancelReservationRequest
	// body không bắt buộc
	if c.Request.ContentLength > 0 && !bindJSON(c, &in) {
		return
	}
	r.respond(c)(r.Reservations.Cancel(c.Request.Context(), id, in.Reason))
}

func (r ReservationController) respond(c *gin.Context) func(*models.Reservation, error) {
	return func(reservation *models.Reservation, err error) {
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Success(c, reservation)
	}
}
