package job

// Job tracks an async refresh run in Redis. Only internal bookkeeping;
// the API exposes it verbatim through the job status endpoint.
type Job struct {
	JobID   string    `json:"job_id"`
	Type    Type      `json:"type"`
	Status  Status    `json:"status"`
	Results JobResult `json:"results,omitempty"`
	Error   string    `json:"error,omitempty"`
}

type Type string

const (
	TypeRefresh Type = "refresh"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type JobResult struct {
	RefreshResult *RefreshResult `json:"refresh_result,omitempty"`
}

// RefreshResult records what a price refresh changed.
type RefreshResult struct {
	GoodID   string   `json:"good_id"`
	URL      string   `json:"url"`
	OldPrice *float64 `json:"old_price,omitempty"`
	NewPrice *float64 `json:"new_price,omitempty"`
}
