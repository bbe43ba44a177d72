package controllers

import (
	"strconv"

	"homestay/dto"
	"homestay/middleware"
	"homestay/response"
	"homestay/services"
	"homestay/validator"

	"github.com/gin-gonic/gin"
)

// parseID đọc tham số :id trên URL, trả về false nếu đã ghi response lỗi
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.Fail(c, validator.BindingError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.Fail(c, validator.BindingError(err))
		return false
	}
	return true
}

// actor lấy user hiện tại, route luôn đi qua AuthMiddleware nên thiếu actor là lỗi xác thực
func actor(c *gin.Context) (services.Actor, bool) {
	a, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
	}
	return a, ok
}

func paginated(c *gin.Context, data interface{}, page dto.PageQuery, total int64) {
	page = page.Normalize()
	response.SuccessWithPagination(c, data, page.Page, page.Limit, total)
}
