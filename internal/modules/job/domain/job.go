package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Trigger identifies the command message a job was dispatched from. Peer
// holds a tg.InputPeerClass owned by the telegram transport; services treat
// it as opaque.
type Trigger struct {
	MessageID int
	Peer      interface{}
}

// ItemFailure records one media item that could not be downloaded.
type ItemFailure struct {
	MessageID int    `json:"message_id"`
	Error     string `json:"error"`
}

// Job is one end-to-end execution of a download command. It lives in memory
// only; nothing about it survives a process restart.
type Job struct {
	ID         string     `json:"id"`
	ChannelRef string     `json:"channel_ref"`
	Trigger    Trigger    `json:"-"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	mu             sync.Mutex
	state          JobState
	itemsProcessed int
	failures       []ItemFailure
}

// NewJob creates a job for a normalized channel reference.
func NewJob(channelRef string, trigger Trigger) *Job {
	return &Job{
		ID:         uuid.NewString(),
		ChannelRef: channelRef,
		Trigger:    trigger,
		StartedAt:  time.Now(),
		state:      JobStateCreated,
	}
}

// SetState advances the job's lifecycle state.
func (j *Job) SetState(s JobState) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = s
	if s == JobStateDone || s == JobStateResolutionFailed || s == JobStateInterrupted {
		now := time.Now()
		j.FinishedAt = &now
	}
}

// State returns the current lifecycle state.
func (j *Job) State() JobState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// MarkProcessed increments the processed-item counter.
func (j *Job) MarkProcessed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.itemsProcessed++
}

// MarkFailed records an isolated per-item failure.
func (j *Job) MarkFailed(messageID int, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.failures = append(j.failures, ItemFailure{MessageID: messageID, Error: err.Error()})
}

// ItemsProcessed returns the number of successfully downloaded items.
func (j *Job) ItemsProcessed() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.itemsProcessed
}

// Failures returns a copy of the recorded per-item failures, in order.
func (j *Job) Failures() []ItemFailure {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]ItemFailure, len(j.failures))
	copy(out, j.failures)
	return out
}

// Snapshot is an immutable view of a job for status reporting.
type Snapshot struct {
	ID             string        `json:"id"`
	ChannelRef     string        `json:"channel_ref"`
	State          JobState      `json:"state"`
	StartedAt      time.Time     `json:"started_at"`
	FinishedAt     *time.Time    `json:"finished_at,omitempty"`
	ItemsProcessed int           `json:"items_processed"`
	Failures       []ItemFailure `json:"failures,omitempty"`
}

// Snapshot captures the job's current state for status reporting.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	failures := make([]ItemFailure, len(j.failures))
	copy(failures, j.failures)
	return Snapshot{
		ID:             j.ID,
		ChannelRef:     j.ChannelRef,
		State:          j.state,
		StartedAt:      j.StartedAt,
		FinishedAt:     j.FinishedAt,
		ItemsProcessed: j.itemsProcessed,
		Failures:       failures,
	}
}
