package dto

import "github.com/google/uuid"

type UploadResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
	Filepath string `json:"filepath,omitempty"`
}

// IngestFileMessage is the payload published to the ingestion topic when an
// upload is accepted.
type IngestFileMessage struct {
	JobId     string    `json:"job_id"`
	SessionId uuid.UUID `json:"session_id"`
	Filename  string    `json:"filename"`
	FilePath  string    `json:"file_path"`
}
