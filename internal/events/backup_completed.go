package events

import "time"

const BackupTopic = "hiring.backup.v1"

const (
	BackupCompletedEventType  = "backup_completed"
	RestoreCompletedEventType = "restore_completed"
)

type BackupCompletedEvent struct {
	EventType  string    `json:"event_type"`
	Table      string    `json:"table"`
	Rows       int       `json:"rows"`
	ObjectKey  string    `json:"object_key"`
	OccurredAt time.Time `json:"occurred_at"`
}
