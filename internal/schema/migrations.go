package schema

// Migration is a single, forward-only schema change. Statements run in
// order inside one transaction.
type Migration struct {
	Version     int
	Description string
	Statements  []string
}

// Migrations is the ordered, append-only list of schema versions. Never
// edit an applied migration; add a new version instead.
var Migrations = []Migration{
	{
		Version:     1,
		Description: "Create hiring tables, constraints and lookup indexes",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS departments (
				id BIGINT PRIMARY KEY,
				department TEXT NOT NULL UNIQUE
			)`,
			`CREATE TABLE IF NOT EXISTS jobs (
				id BIGINT PRIMARY KEY,
				job TEXT NOT NULL UNIQUE
			)`,
			`CREATE TABLE IF NOT EXISTS hired_employees (
				id BIGINT PRIMARY KEY,
				name TEXT NOT NULL,
				hire_datetime TIMESTAMPTZ NOT NULL,
				department_id BIGINT REFERENCES departments (id) ON DELETE CASCADE,
				job_id BIGINT REFERENCES jobs (id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_hired_employees_department_id
				ON hired_employees (department_id)`,
			`CREATE INDEX IF NOT EXISTS idx_hired_employees_job_id
				ON hired_employees (job_id)`,
			`CREATE INDEX IF NOT EXISTS idx_hired_employees_hire_datetime
				ON hired_employees (hire_datetime)`,
		},
	},
	{
		Version:     2,
		Description: "Create outbox table for event publishing",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS outbox_events (
				id UUID PRIMARY KEY,
				request_id TEXT,
				aggregate_type TEXT NOT NULL,
				aggregate_id TEXT NOT NULL,
				event_type TEXT NOT NULL,
				topic TEXT NOT NULL,
				payload JSONB NOT NULL,
				status TEXT NOT NULL,
				retry_count INT NOT NULL DEFAULT 0,
				next_retry_at TIMESTAMPTZ,
				error_message TEXT,
				processed_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created_at
				ON outbox_events (status, created_at)`,
		},
	},
}
