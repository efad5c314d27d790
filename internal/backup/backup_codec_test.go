package backup_test

import (
	"bytes"
	"testing"

	"github.com/davbarrer/reporting-pipeline-gb/internal/backup"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeTable_HiredEmployees(t *testing.T) {
	rows := []map[string]any{
		{
			"id":            int64(1),
			"name":          "Harold Vogt",
			"hire_datetime": "2021-11-07T02:48:42Z",
			"department_id": int64(2),
			"job_id":        int64(96),
		},
		{
			"id":            int64(2),
			"name":          "Ty Hofer",
			"hire_datetime": "2021-05-30T05:43:46Z",
			"department_id": int64(8),
			"job_id":        int64(52),
		},
	}

	data, err := backup.EncodeTable("hired_employees", rows)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	decoded, err := backup.DecodeTable("hired_employees", bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, rows, decoded)
}

func TestEncodeDecodeTable_Departments(t *testing.T) {
	rows := []map[string]any{
		{"id": int64(1), "department": "Product Management"},
		{"id": int64(2), "department": "Sales"},
	}

	data, err := backup.EncodeTable("departments", rows)
	assert.NoError(t, err)

	decoded, err := backup.DecodeTable("departments", bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, rows, decoded)
}

func TestEncodeTable_UnknownTable(t *testing.T) {
	_, err := backup.EncodeTable("salaries", nil)
	assert.Error(t, err)
}

func TestDecodeTable_RejectsGarbage(t *testing.T) {
	_, err := backup.DecodeTable("jobs", bytes.NewReader([]byte("not avro")))
	assert.Error(t, err)
}
