package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once written. Id is the monotonic ordering key.
type Message struct {
	Id        int64
	SessionId uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}
