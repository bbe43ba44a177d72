package dto

import (
	"homestay/constants"
	"homestay/models"
)

type RequestDepositRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"max=500"`
}

type CollectDepositRequest struct {
	Method      string `json:"method" binding:"required,depositmethod"`
	TxnID       string `json:"txnId" binding:"max=100"`
	EvidenceURL string `json:"evidenceUrl" binding:"max=500"`
}

type RefundDepositRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"max=500"`
	Method string `json:"method" binding:"omitempty,depositmethod"`
	TxnID  string `json:"txnId" binding:"max=100"`
}

type ForfeitDepositRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"required,max=500"`
}

type FailDepositRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type DepositListQuery struct {
	PageQuery
	Status constants.DepositStatus `form:"status"`
}

// DepositResult đơn sau khi chuyển trạng thái cọc và dòng sổ cọc vừa ghi
type DepositResult struct {
	Reservation *models.Reservation  `json:"reservation"`
	Event       *models.DepositEvent `json:"event"`
}
