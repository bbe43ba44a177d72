package controllers

import (
	"homestay/dto"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) UserController {
	return UserController{Users: users}
}

func (u UserController) GetUsers(c *gin.Context) {
	var q dto.UserListQuery
	if !bindQuery(c, &q) {
		return
	}
	users, total, err := u.Users.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	paginated(c, users, q.PageQuery, total)
}

func (u UserController) GetUserByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := u.Users.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, user)
}

func (u UserController) CreateUser(c *gin.Context) {
	var in dto.CreateUserRequest
	if !bindJSON(c, &in) {
		return
	}
	user, err := u.Users.Create(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, user)
}

func (u UserController) UpdateUser(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.UpdateUserRequest
	if !bindJSON(c, &in) {
		return
	}
	user, err := u.Users.Update(c.Request.Context(), current, id, in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, user)
}

// DeactivateUser khóa tài khoản, không xóa dữ liệu
func (u UserController) DeactivateUser(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := u.Users.Deactivate(c.Request.Context(), current, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, user)
}
