package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// tableFiles maps each table to its headerless CSV object and fixed
// column order.
var tableFiles = map[string]struct {
	Key     string
	Columns []string
}{
	"departments":     {Key: "departments.csv", Columns: []string{"id", "department"}},
	"jobs":            {Key: "jobs.csv", Columns: []string{"id", "job"}},
	"hired_employees": {Key: "hired_employees.csv", Columns: []string{"id", "name", "hire_datetime", "department_id", "job_id"}},
}

// FailedLine is a rejected CSV line plus why it was rejected; it ends up
// in the failed-records log, never in the database.
type FailedLine struct {
	Table  string
	Line   string
	Reason string
}

func (f FailedLine) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Table, f.Line, f.Reason)
}

// ParseTable reads a headerless CSV stream and converts each line into
// insert arguments in the table's column order. Lines with missing or
// malformed values are dropped and reported.
func ParseTable(table string, r io.Reader) ([][]any, []FailedLine, error) {
	spec, ok := tableFiles[table]
	if !ok {
		return nil, nil, fmt.Errorf("unknown table %q", table)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(spec.Columns)

	var (
		rows   [][]any
		failed []FailedLine
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed line (wrong field count, bad quoting) fails
			// only itself.
			failed = append(failed, FailedLine{
				Table:  table,
				Line:   strings.Join(record, ","),
				Reason: err.Error(),
			})
			continue
		}

		args, reason := convertLine(spec.Columns, record)
		if reason != "" {
			failed = append(failed, FailedLine{
				Table:  table,
				Line:   strings.Join(record, ","),
				Reason: reason,
			})
			continue
		}
		rows = append(rows, args)
	}

	return rows, failed, nil
}

func convertLine(columns []string, record []string) ([]any, string) {
	args := make([]any, len(columns))

	for i, col := range columns {
		raw := strings.TrimSpace(record[i])
		if raw == "" {
			return nil, fmt.Sprintf("missing value for %s", col)
		}

		switch col {
		case "id", "department_id", "job_id":
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Sprintf("invalid %s: %s", col, raw)
			}
			args[i] = n
		case "hire_datetime":
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, fmt.Sprintf("invalid %s: %s", col, raw)
			}
			args[i] = t
		default:
			args[i] = raw
		}
	}

	return args, ""
}
