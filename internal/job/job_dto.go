package job

type CreateJobRequest struct {
	ID  int64  `json:"id"`
	Job string `json:"job" binding:"required"`
}

type JobResponse struct {
	ID  int64  `json:"id"`
	Job string `json:"job"`
}
