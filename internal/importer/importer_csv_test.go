package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/davbarrer/reporting-pipeline-gb/internal/importer"

	"github.com/stretchr/testify/assert"
)

func TestParseTable_Departments(t *testing.T) {
	csv := strings.Join([]string{
		"1,Product Management",
		"2,Sales",
		"3,",
		"4,Engineering",
	}, "\n")

	rows, failed, err := importer.ParseTable("departments", strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []any{int64(1), "Product Management"}, rows[0])
	assert.Len(t, failed, 1)
	assert.Contains(t, failed[0].Reason, "department")
}

func TestParseTable_HiredEmployees(t *testing.T) {
	csv := strings.Join([]string{
		"1,Harold Vogt,2021-11-07T02:48:42Z,2,96",
		"2,Ty Hofer,2021-05-30T05:43:46Z,8,52",
		"3,Lyman Hadye,not-a-date,5,52",
		"4,Lotti Crowthe,2021-10-01T13:04:21Z,abc,52",
	}, "\n")

	rows, failed, err := importer.ParseTable("hired_employees", strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	hiredAt, _ := rows[0][2].(time.Time)
	assert.Equal(t, 2021, hiredAt.Year())
	assert.Equal(t, int64(96), rows[0][4])

	assert.Len(t, failed, 2)
	assert.Contains(t, failed[0].Reason, "hire_datetime")
	assert.Contains(t, failed[1].Reason, "department_id")
}

func TestParseTable_WrongFieldCount(t *testing.T) {
	csv := "1,Sales,extra-column\n2,Engineering\n"

	rows, failed, err := importer.ParseTable("departments", strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Len(t, failed, 1)
}

func TestParseTable_UnknownTable(t *testing.T) {
	_, _, err := importer.ParseTable("salaries", strings.NewReader(""))
	assert.Error(t, err)
}
