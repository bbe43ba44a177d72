package dto

import "homestay/constants"

type AssignCleaningRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

type CompleteCleaningRequest struct {
	PhotoURLs []string `json:"photoUrls" binding:"dive,max=500"`
	Notes     string   `json:"notes"`
}

type FailCleaningRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type CleaningListQuery struct {
	PageQuery
	Status       constants.CleaningStatus `form:"status"`
	AssignedToID uint                     `form:"assignedTo"`
	UnitID       uint                     `form:"unitId"`
}
