package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationStatusQueued = "queued"
	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Status    string
	Attempts  int
	LastError *string
}
