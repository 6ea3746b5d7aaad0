package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	jobDomain "github.com/okuznetsov/tgarchiver/internal/modules/job/domain"
	mediaDomain "github.com/okuznetsov/tgarchiver/internal/modules/media/domain"
	"github.com/okuznetsov/tgarchiver/internal/shared/config"
)

// Resolver turns a normalized channel reference into an addressable handle.
// Resolution fails for private or unknown channels.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (*mediaDomain.ResolvedChannel, error)
}

// Enumerator walks a channel's full history oldest-to-newest and calls fn
// for every video attachment. Returning an error from fn stops the walk.
type Enumerator interface {
	EachVideo(ctx context.Context, ch *mediaDomain.ResolvedChannel, fn func(mediaDomain.VideoItem) error) error
}

// Downloader transfers a single video into destDir and returns the written
// path.
type Downloader interface {
	Download(ctx context.Context, item mediaDomain.VideoItem, destDir string) (string, error)
}

// Notifier sends replies on the trigger message and edits its text.
type Notifier interface {
	Reply(ctx context.Context, trigger jobDomain.Trigger, text string) error
	Edit(ctx context.Context, trigger jobDomain.Trigger, text string) error
}

// Service drives one download job end to end: acknowledgment, resolution,
// the sequential throttled download loop, and completion signaling. Per-item
// failures are isolated; only resolution failure terminates a job early.
type Service struct {
	cfg        *config.Config
	resolver   Resolver
	enumerator Enumerator
	downloader Downloader
	notifier   Notifier

	// pause waits between items; overridable in tests
	pause func(ctx context.Context) error
}

// New creates a download executor.
func New(cfg *config.Config, resolver Resolver, enumerator Enumerator, downloader Downloader, notifier Notifier) *Service {
	s := &Service{
		cfg:        cfg,
		resolver:   resolver,
		enumerator: enumerator,
		downloader: downloader,
		notifier:   notifier,
	}
	s.pause = s.throttle
	return s
}

// Run executes the job to its terminal state. It never returns an error:
// every failure mode is either reported on the trigger message or logged.
func (s *Service) Run(ctx context.Context, job *jobDomain.Job) {
	log := slog.With("job_id", job.ID, "channel", job.ChannelRef)

	// Acknowledge before any resolution is attempted
	job.SetState(jobDomain.JobStateAcknowledged)
	if err := s.notifier.Reply(ctx, job.Trigger, fmt.Sprintf("downloading videos from %s...", job.ChannelRef)); err != nil {
		log.Error("Failed to send acknowledgment", "error", err)
	}

	job.SetState(jobDomain.JobStateResolving)
	ch, err := s.resolver.Resolve(ctx, job.ChannelRef)
	if err != nil {
		job.SetState(jobDomain.JobStateResolutionFailed)
		log.Error("Channel resolution failed", "error", err)
		notice := fmt.Sprintf("failed to resolve %s, it may be private or not exist", job.ChannelRef)
		if rerr := s.notifier.Reply(ctx, job.Trigger, notice); rerr != nil {
			log.Error("Failed to send resolution failure notice", "error", rerr)
		}
		return
	}

	job.SetState(jobDomain.JobStateEnumerating)
	walkErr := s.enumerator.EachVideo(ctx, ch, func(item mediaDomain.VideoItem) error {
		job.SetState(jobDomain.JobStateDownloading)
		path, derr := s.downloader.Download(ctx, item, s.cfg.VideosDir)
		if derr != nil {
			// One bad video must never stop the rest of the channel
			job.MarkFailed(item.MessageID, derr)
			log.Error("Video download failed", "message_id", item.MessageID, "error", derr)
		} else {
			job.MarkProcessed()
			log.Info("Video downloaded", "message_id", item.MessageID, "path", path)
		}
		return s.pause(ctx)
	})
	if walkErr != nil {
		log.Error("History walk stopped", "error", walkErr)
	}

	// A canceled context means shutdown mid-job: the history was not fully
	// walked, so the job is interrupted rather than done and no "finished"
	// signal goes out.
	if ctx.Err() != nil {
		job.SetState(jobDomain.JobStateInterrupted)
		log.Warn("Job interrupted", "items_processed", job.ItemsProcessed())
		return
	}

	// Completion is signaled regardless of per-item failures
	job.SetState(jobDomain.JobStateReporting)
	if err := s.notifier.Edit(ctx, job.Trigger, "finished"); err != nil {
		// Best-effort: the edit window may have expired
		log.Error("Failed to mark trigger message finished", "error", err)
	}

	job.SetState(jobDomain.JobStateDone)
	log.Info("Job finished", "items_processed", job.ItemsProcessed(), "failures", len(job.Failures()))
}

// throttle blocks for a uniform random duration drawn from the configured
// inclusive minute range. The wait is scoped to the job's worker goroutine
// and aborts when the context is canceled.
func (s *Service) throttle(ctx context.Context) error {
	minutes := s.cfg.ThrottleMinMinutes + rand.N(s.cfg.ThrottleMaxMinutes-s.cfg.ThrottleMinMinutes+1)
	slog.Info("Waiting before next video", "minutes", minutes)

	timer := time.NewTimer(time.Duration(minutes) * time.Minute)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
