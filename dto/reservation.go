package dto

import "homestay/constants"

type CreateReservationRequest struct {
	UnitID        uint                        `json:"unitId" binding:"required"`
	GuestID       uint                        `json:"guestId" binding:"required"`
	CheckIn       Timestamp                   `json:"checkIn"`
	CheckOut      Timestamp                   `json:"checkOut"`
	Status        constants.ReservationStatus `json:"status" binding:"omitempty,oneof=DRAFT CONFIRMED"`
	TotalAmount   int64                       `json:"totalAmount" binding:"min=0"`
	CleaningFee   int64                       `json:"cleaningFee" binding:"min=0"`
	DepositAmount int64                       `json:"depositAmount" binding:"min=0"`
	Notes         string                      `json:"notes"`
}

type UpdateReservationRequest struct {
	UnitID      *uint      `json:"unitId" binding:"omitempty,min=1"`
	GuestID     *uint      `json:"guestId" binding:"omitempty,min=1"`
	CheckIn     *Timestamp `json:"checkIn"`
	CheckOut    *Timestamp `json:"checkOut"`
	TotalAmount *int64     `json:"totalAmount" binding:"omitempty,min=0"`
	CleaningFee *int64     `json:"cleaningFee" binding:"omitempty,min=0"`
	Notes       *string    `json:"notes"`
}

type ExtendReservationRequest struct {
	CheckOut Timestamp `json:"checkOut"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ReservationListQuery struct {
	PageQuery
	Status        constants.ReservationStatus `form:"status"`
	DepositStatus constants.DepositStatus     `form:"depositStatus"`
	UnitID        uint                        `form:"unitId"`
	GuestID       uint                        `form:"guestId"`
	LocationID    uint                        `form:"locationId"`
	From          string                      `form:"from"`
	To            string                      `form:"to"`
}
