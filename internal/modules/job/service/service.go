package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/oops"

	"github.com/okuznetsov/tgarchiver/internal/modules/job/domain"
	"github.com/okuznetsov/tgarchiver/internal/shared/config"
	"github.com/okuznetsov/tgarchiver/internal/shared/errors"
)

// Executor runs one job to its terminal state.
type Executor interface {
	Run(ctx context.Context, job *domain.Job)
}

const historyLimit = 50

// Service owns the process-wide job slot. Jobs run one at a time on a single
// worker goroutine so the update handler stays responsive during throttling
// pauses. A command arriving while a job runs is rejected or queued per the
// configured slot policy.
type Service struct {
	cfg      *config.Config
	executor Executor
	queue    chan *domain.Job

	mu          sync.Mutex
	outstanding int // accepted but not yet finished
	current     *domain.Job
	history     []*domain.Job // most recent first

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a job manager.
func New(cfg *config.Config, executor Executor) *Service {
	capacity := 1
	if cfg.SlotPolicy == domain.SlotPolicyQueue {
		capacity = cfg.QueueSize
	}
	return &Service{
		cfg:      cfg,
		executor: executor,
		queue:    make(chan *domain.Job, capacity),
	}
}

// Start launches the worker goroutine. Canceling ctx cancels the running job
// and stops the worker.
func (s *Service) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.worker()
}

// Stop cancels the running job, if any, and waits for the worker to exit.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// Submit accepts a job for execution. The returned bool reports whether the
// job was queued behind other work rather than started immediately. With the
// reject policy a busy slot yields ErrJobInFlight; with the queue policy a
// full queue yields ErrQueueFull.
func (s *Service) Submit(job *domain.Job) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	busy := s.outstanding > 0
	if busy && s.cfg.SlotPolicy == domain.SlotPolicyReject {
		return false, oops.With("channel", job.ChannelRef).Wrap(errors.ErrJobInFlight)
	}

	select {
	case s.queue <- job:
		s.outstanding++
		return busy, nil
	default:
		return false, oops.With("channel", job.ChannelRef).Wrap(errors.ErrQueueFull)
	}
}

func (s *Service) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case job := <-s.queue:
			s.mu.Lock()
			s.current = job
			s.mu.Unlock()

			slog.Info("Job started", "job_id", job.ID, "channel", job.ChannelRef)
			s.executor.Run(s.ctx, job)

			s.mu.Lock()
			s.current = nil
			s.outstanding--
			s.history = append([]*domain.Job{job}, s.history...)
			if len(s.history) > historyLimit {
				s.history = s.history[:historyLimit]
			}
			s.mu.Unlock()
		}
	}
}

// Status is a point-in-time view of the job slot.
type Status struct {
	Running *domain.Snapshot  `json:"running,omitempty"`
	Queued  int               `json:"queued"`
	History []domain.Snapshot `json:"history"`
}

// Snapshot reports the in-flight job, queue depth and recent history.
func (s *Service) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{Queued: len(s.queue), History: s.recentLocked()}
	if s.current != nil {
		snap := s.current.Snapshot()
		status.Running = &snap
	}
	return status
}

// Recent returns snapshots of recently finished jobs, newest first.
func (s *Service) Recent() []domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recentLocked()
}

func (s *Service) recentLocked() []domain.Snapshot {
	out := make([]domain.Snapshot, 0, len(s.history))
	for _, job := range s.history {
		out = append(out, job.Snapshot())
	}
	return out
}
