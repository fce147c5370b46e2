package job

import (
	"context"
	"fmt"

	rds "wishlist/internal/platform/redis"
)

type JobService struct{ redis *rds.Service }

func NewJobService(redis *rds.Service) *JobService { return &JobService{redis: redis} }

func (s *JobService) GetJobStatus(ctx context.Context, jobID string) (*Job, error) {
	var job Job
	if err := s.redis.CacheGet(ctx, key(jobID), &job); err != nil {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	return &job, nil
}

func (s *JobService) store(ctx context.Context, jobID string, jobType Type, status Status, result *RefreshResult, errMsg string) error {
	var job Job
	_ = s.redis.CacheGet(ctx, key(jobID), &job)
	job.JobID = jobID
	job.Type = jobType
	job.Status = status
	job.Error = errMsg
	if result != nil {
		job.Results = JobResult{RefreshResult: result}
	}
	if err := s.redis.CacheSet(ctx, key(jobID), job, ttl(status)); err != nil {
		return err
	}
	// Update event for listeners polling over pub/sub.
	_ = s.redis.Client().Publish(ctx, key(jobID), "updated").Err()
	return nil
}

func (s *JobService) InitPending(ctx context.Context, jobID string, jobType Type, goodID, url string) error {
	return s.store(ctx, jobID, jobType, StatusPending, &RefreshResult{GoodID: goodID, URL: url}, "")
}

func (s *JobService) SetProcessing(ctx context.Context, jobID string, jobType Type) error {
	return s.store(ctx, jobID, jobType, StatusProcessing, nil, "")
}

func (s *JobService) Complete(ctx context.Context, jobID string, jobType Type, result *RefreshResult) error {
	return s.store(ctx, jobID, jobType, StatusCompleted, result, "")
}

func (s *JobService) Fail(ctx context.Context, jobID string, jobType Type, errMsg string) error {
	return s.store(ctx, jobID, jobType, StatusFailed, nil, errMsg)
}

func key(id string) string { return "job:" + id }

func ttl(s Status) int {
	if s == StatusCompleted || s == StatusFailed {
		return 3600
	}
	return 600
}
