package events

import "time"

const RecordsIngestedTopic = "hiring.ingest.v1"

const RecordsIngestedEventType = "records_ingested"

type RecordsIngestedEvent struct {
	EventType  string    `json:"event_type"`
	Table      string    `json:"table"`
	Inserted   int       `json:"inserted"`
	Failed     int       `json:"failed"`
	OccurredAt time.Time `json:"occurred_at"`
}
