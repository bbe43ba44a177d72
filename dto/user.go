package dto

import "homestay/constants"

type CreateUserRequest struct {
	Name        string         `json:"name" binding:"required,max=100"`
	Email       string         `json:"email" binding:"required,email"`
	Password    string         `json:"password" binding:"required,min=8"`
	PhoneNumber string         `json:"phoneNumber" binding:"omitempty,phone"`
	Role        constants.Role `json:"role" binding:"required,role"`
}

type UpdateUserRequest struct {
	Name        *string         `json:"name" binding:"omitempty,max=100"`
	Password    *string         `json:"password" binding:"omitempty,min=8"`
	PhoneNumber *string         `json:"phoneNumber" binding:"omitempty,phone"`
	Role        *constants.Role `json:"role" binding:"omitempty,role"`
	IsActive    *bool           `json:"isActive"`
}

type UserListQuery struct {
	PageQuery
	Role   constants.Role `form:"role" binding:"omitempty,role"`
	Active *bool          `form:"active"`
	Query  string         `form:"q"`
}
