package dto

import "github.com/google/uuid"

type SendChatRequest struct {
	SessionId uuid.UUID `json:"session_id" form:"session_id" validate:"required"`
	Message   string    `json:"message" form:"message" validate:"required"`
}

type SendChatResponse struct {
	Answer string `json:"answer"`
}
