package dto

import (
	"time"

	"github.com/google/uuid"
)

type OpenSessionResponse struct {
	SessionId     uuid.UUID `json:"session_id"`
	SessionExists bool      `json:"session_exists"`
}

type CreateSessionRequest struct {
	Name string `json:"name" form:"name" validate:"max=200"`
}

type CreateSessionResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type RenameSessionRequest struct {
	SessionId uuid.UUID `json:"session_id" form:"session_id" validate:"required"`
	Name      string    `json:"name" form:"name" validate:"required,max=200"`
}

type DeleteSessionRequest struct {
	SessionId uuid.UUID `json:"session_id" form:"session_id" validate:"required"`
}

type SessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type UploadFileResponse struct {
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
}
