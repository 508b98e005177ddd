package store

import "time"

// Ingestion job states. Jobs live in process memory only; anything in flight
// when the process exits is lost, and the already-persisted file record stays
// without its knowledge rows.
const (
	JobStatusQueued     = "QUEUED"
	JobStatusExtracting = "EXTRACTING"
	JobStatusChunking   = "CHUNKING"
	JobStatusEmbedding  = "EMBEDDING"
	JobStatusStored     = "STORED"
	JobStatusDone       = "DONE"
	JobStatusFailed     = "FAILED"
)

// IngestionJob tracks one background document ingestion. Observable through
// logs and this record only; there is deliberately no HTTP status API, but
// keeping the record makes adding one possible without redesign.
type IngestionJob struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Filename    string    `json:"filename"`
	FilePath    string    `json:"file_path"`
	Status      string    `json:"status"`
	ChunksDone  int       `json:"chunks_done"`
	ChunksTotal int       `json:"chunks_total"`
	Error       string    `json:"error,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
