package controllers

import (
	"homestay/dto"
	"homestay/middleware"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{Auth: auth}
}

func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := a.Auth.Login(c.Request.Context(), input)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}

// Logout thu hồi access token hiện tại
func (a AuthController) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	if err := a.Auth.Logout(c.Request.Context(), token); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"loggedOut": true})
}

func (a AuthController) Me(c *gin.Context) {
	current, ok := actor(c)
	if !ok {
		return
	}
	user, err := a.Auth.Me(c.Request.Context(), current)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, user)
}
