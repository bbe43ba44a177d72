package dto

type CreateGuestRequest struct {
	FullName    string `json:"fullName" binding:"required,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,phone"`
	IDNumber    string `json:"idNumber" binding:"max=50"`
	Nationality string `json:"nationality" binding:"max=100"`
	Notes       string `json:"notes"`
}

type UpdateGuestRequest struct {
	FullName    *string `json:"fullName" binding:"omitempty,min=1,max=255"`
	Email       *string `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,phone"`
	IDNumber    *string `json:"idNumber" binding:"omitempty,max=50"`
	Nationality *string `json:"nationality" binding:"omitempty,max=100"`
	Notes       *string `json:"notes"`
}

type GuestListQuery struct {
	PageQuery
	Query string `form:"q"`
}
