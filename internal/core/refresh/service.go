package refresh

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"wishlist/internal/config"
	"wishlist/internal/core/extract"
	"wishlist/internal/core/good"
	"wishlist/internal/core/job"
	"wishlist/internal/logger"
	tasks "wishlist/internal/platform/tasks"
)

const TaskTypeRefresh = "refresh:task"

type TaskPayload struct {
	JobID  string `json:"job_id"`
	GoodID string `json:"good_id"`
}

// Service re-extracts prices for stored goods, either on demand or from
// the nightly sweep.
type Service struct {
	log       *logger.Logger
	job       *job.JobService
	tasks     *tasks.Client
	repo      *good.Repository
	extractor *extract.Service
	config    config.Config
}

func NewService(cfg config.Config, jobSvc *job.JobService, taskClient *tasks.Client, repo *good.Repository, extractor *extract.Service) *Service {
	return &Service{
		log:       logger.New("RefreshService"),
		job:       jobSvc,
		tasks:     taskClient,
		repo:      repo,
		extractor: extractor,
		config:    cfg,
	}
}

// Enqueue queues a price refresh for one good and returns the job id for
// status polling.
func (s *Service) Enqueue(ctx context.Context, goodID string) (string, error) {
	g, err := s.repo.GetByID(ctx, goodID)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	payload, _ := json.Marshal(TaskPayload{JobID: id, GoodID: g.ID})
	if err := s.job.InitPending(ctx, id, job.TypeRefresh, g.ID, g.URL); err != nil {
		return "", err
	}
	task := asynq.NewTask(TaskTypeRefresh, payload)
	if err := s.tasks.Enqueue(task, "default", s.config.TaskMaxRetries); err != nil {
		return "", err
	}
	s.log.LogInfof("enqueued refresh job %s for good %s (%s)", id, g.ID, g.URL)
	return id, nil
}

func (s *Service) HandleTask(ctx context.Context, task *asynq.Task) error {
	var p TaskPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return err
	}
	s.log.LogInfof("processing refresh job %s for good %s", p.JobID, p.GoodID)
	if err := s.job.SetProcessing(ctx, p.JobID, job.TypeRefresh); err != nil {
		return err
	}

	result, err := s.refresh(ctx, p.GoodID)
	if err != nil {
		s.log.LogErrorf("refresh job %s failed: %v", p.JobID, err)
		_ = s.job.Fail(ctx, p.JobID, job.TypeRefresh, err.Error())
		return err
	}
	return s.job.Complete(ctx, p.JobID, job.TypeRefresh, result)
}

func (s *Service) refresh(ctx context.Context, goodID string) (*job.RefreshResult, error) {
	g, err := s.repo.GetByID(ctx, goodID)
	if err != nil {
		return nil, fmt.Errorf("load good %s: %w", goodID, err)
	}

	result := &job.RefreshResult{GoodID: g.ID, URL: g.URL, OldPrice: g.Price}
	info, err := s.extractor.Extract(ctx, g.URL)
	if err != nil {
		return nil, fmt.Errorf("re-extract %s: %w", g.URL, err)
	}

	if info.Price != nil {
		if price, ok := extract.NormalizePrice(*info.Price); ok {
			result.NewPrice = &price
		}
	}
	// A missed price clears the stored one rather than keeping stale data.
	if err := s.repo.UpdatePrice(ctx, g.ID, result.NewPrice); err != nil {
		return nil, err
	}
	return result, nil
}

// EnqueueAll queues a refresh for every stored good. Used by the nightly
// sweep; failures on individual goods are logged and skipped.
func (s *Service) EnqueueAll(ctx context.Context) (int, error) {
	goods, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	queued := 0
	for _, g := range goods {
		if _, err := s.Enqueue(ctx, g.ID); err != nil {
			s.log.LogWarnf("sweep: skip good %s: %v", g.ID, err)
			continue
		}
		queued++
	}
	s.log.LogInfof("sweep queued %d of %d goods", queued, len(goods))
	return queued, nil
}
