package controllers

import (
	"context"

	"homestay/dto"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type DepositController struct {
	Deposits *services.DepositService
}

func NewDepositController(deposits *services.DepositService) DepositController {
	return DepositController{Deposits: deposits}
}

func (d DepositController) GetDeposits(c *gin.Context) {
	var q dto.DepositListQuery
	if !bindQuery(c, &q) {
		return
	}
	reservations, total, err := d.Deposits.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	paginated(c, reservations, q.PageQuery, total)
}

// GetEvents sổ cọc của một đơn, theo thứ tự ghi
func (d DepositController) GetEvents(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	events, err := d.Deposits.Events(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, events)
}

func (d DepositController) Request(c *gin.Context) {
	var in dto.RequestDepositRequest
	handleDeposit(c, &in, func(ctx context.Context, a services.Actor, id uint) (*dto.DepositResult, error) {
		return d.Deposits.Request(ctx, a, id, in)
	})
}

func (d DepositController) Collect(c *gin.Context) {
	var in dto.CollectDepositRequest
	handleDeposit(c, &in, func(ctx context.Context, a services.Actor, id uint) (*dto.DepositResult, error) {
		return d.Deposits.Collect(ctx, a, id, in)
	})
}

func (d DepositController) Refund(c *gin.Context) {
	var in dto.RefundDepositRequest
	handleDeposit(c, &in, func(ctx context.Context, a services.Actor, id uint) (*dto.DepositResult, error) {
		return d.Deposits.Refund(ctx, a, id, in)
	})
}

func (d DepositController) Forfeit(c *gin.Context) {
	var in dto.ForfeitDepositRequest
	handleDeposit(c, &in, func(ctx context.Context, a services.Actor, id uint) (*dto.DepositResult, error) {
		return d.Deposits.Forfeit(ctx, a, id, in)
	})
}

func (d DepositController) Fail(c *gin.Context) {
	var in dto.FailDepositRequest
	handleDeposit(c, &in, func(ctx context.Context, a services.Actor, id uint) (*dto.DepositResult, error) {
		return d.Deposits.Fail(ctx, a, id, in)
	})
}

func handleDeposit(c *gin.Context, in interface{}, fn func(ctx context.Context, a services.Actor, id uint) (*dto.DepositResult, error)) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !bindJSON(c, in) {
		return
	}
	res, err := fn(c.Request.Context(), current, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}
