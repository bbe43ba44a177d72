package dto

type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Address     string `json:"address" binding:"max=500"`
	City        string `json:"city" binding:"max=100"`
	Description string `json:"description"`
}

type UpdateLocationRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

type LocationListQuery struct {
	PageQuery
	Query string `form:"q"`
}

type LocationSuggestion struct {
	Query      string `json:"query"`
	Suggestion string `json:"suggestion"`
}
