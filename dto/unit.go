package dto

import (
	"time"

	"homestay/constants"
)

type CreateUnitRequest struct {
	Code        string   `json:"code" binding:"required,max=50"`
	Name        string   `json:"name" binding:"required,max=255"`
	LocationID  uint     `json:"locationId" binding:"required"`
	Type        string   `json:"type" binding:"max=50"`
	Capacity    int      `json:"capacity" binding:"min=0"`
	BasePrice   int64    `json:"basePrice" binding:"min=0"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description"`
}

type UpdateUnitRequest struct {
	Code        *string   `json:"code" binding:"omitempty,min=1,max=50"`
	Name        *string   `json:"name" binding:"omitempty,min=1,max=255"`
	LocationID  *uint     `json:"locationId" binding:"omitempty,min=1"`
	Type        *string   `json:"type" binding:"omitempty,max=50"`
	Capacity    *int      `json:"capacity" binding:"omitempty,min=0"`
	BasePrice   *int64    `json:"basePrice" binding:"omitempty,min=0"`
	Amenities   *[]string `json:"amenities"`
	Description *string   `json:"description"`
	Active      *bool     `json:"active"`
}

type UnitListQuery struct {
	PageQuery
	LocationID uint   `form:"locationId"`
	Active     *bool  `form:"active"`
	Query      string `form:"q"`
}

type AvailabilityQuery struct {
	CheckIn              string `form:"checkIn" binding:"required"`
	CheckOut             string `form:"checkOut" binding:"required"`
	ExcludeReservationID uint   `form:"excludeReservationId"`
}

type ConflictItem struct {
	ID       uint                        `json:"id"`
	Code     string                      `json:"code"`
	CheckIn  time.Time                   `json:"checkIn"`
	CheckOut time.Time                   `json:"checkOut"`
	Status   constants.ReservationStatus `json:"status"`
}

type AvailabilityResponse struct {
	UnitID    uint           `json:"unitId"`
	CheckIn   time.Time      `json:"checkIn"`
	CheckOut  time.Time      `json:"checkOut"`
	Available bool           `json:"available"`
	Conflicts []ConflictItem `json:"conflicts"`
}
