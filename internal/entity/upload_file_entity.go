package entity

import (
	"time"

	"github.com/google/uuid"
)

type UploadFile struct {
	Id        int64
	SessionId uuid.UUID
	Filename  string
	Filepath  string
	CreatedAt time.Time
}
