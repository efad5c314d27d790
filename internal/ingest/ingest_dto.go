package ingest

// InsertRequest is the batch payload: a target table plus raw records.
// Records are validated dynamically against the table's required fields;
// invalid ones are reported back, never silently dropped.
type InsertRequest struct {
	Table string           `json:"table" binding:"required"`
	Data  []map[string]any `json:"data" binding:"required"`
}

type InsertResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	FailedRecords []map[string]any `json:"failed_records"`
}
