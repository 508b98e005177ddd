package model

import (
	"time"

	"github.com/google/uuid"
)

type UploadFile struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_upload_files_session_filename"`
	Filename  string    `gorm:"type:text;not null;uniqueIndex:idx_upload_files_session_filename"`
	Filepath  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UploadFile) TableName() string {
	return "upload_files"
}
