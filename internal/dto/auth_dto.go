package dto

type RegisterRequest struct {
	Username   string `json:"username" form:"username" validate:"required,min=3,max=64"`
	Password   string `json:"password" form:"password" validate:"required,min=8"`
	InviteCode string `json:"invite_code" form:"invite_code" validate:"required,uuid4"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type AuthResponse struct {
	Username string `json:"username"`
}
