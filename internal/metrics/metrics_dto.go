package metrics

// QuarterlyHiresRow is one department/job row of the 2021 quarterly
// hiring report.
type QuarterlyHiresRow struct {
	Department string `json:"department"`
	Job        string `json:"job"`
	Q1         int64  `json:"q1"`
	Q2         int64  `json:"q2"`
	Q3         int64  `json:"q3"`
	Q4         int64  `json:"q4"`
}

// AboveAverageRow is a department that hired more people in 2021 than
// the mean across all departments that hired that year.
type AboveAverageRow struct {
	ID         int64  `json:"id"`
	Department string `json:"department"`
	Hired      int64  `json:"hired"`
}
