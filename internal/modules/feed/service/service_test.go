package service

import (
	"strings"
	"testing"
	"time"

	jobDomain "github.com/okuznetsov/tgarchiver/internal/modules/job/domain"
)

type staticHistory struct {
	snaps []jobDomain.Snapshot
}

func (h *staticHistory) Recent() []jobDomain.Snapshot {
	return h.snaps
}

func TestGenerateFeed(t *testing.T) {
	finished := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	history := &staticHistory{snaps: []jobDomain.Snapshot{
		{
			ID:             "job-1",
			ChannelRef:     "somechannel",
			State:          jobDomain.JobStateDone,
			StartedAt:      finished.Add(-time.Hour),
			FinishedAt:     &finished,
			ItemsProcessed: 3,
			Failures:       []jobDomain.ItemFailure{{MessageID: 9, Error: "boom"}},
		},
		{
			ID:         "job-2",
			ChannelRef: "privatechannel",
			State:      jobDomain.JobStateResolutionFailed,
			StartedAt:  finished.Add(-2 * time.Hour),
		},
	}}

	feed, err := New(history).GenerateFeed("http://localhost:8080")
	if err != nil {
		t.Fatalf("GenerateFeed failed: %v", err)
	}

	if len(feed.Items) != 2 {
		t.Fatalf("expected 2 feed items, got %d", len(feed.Items))
	}
	if !strings.Contains(feed.Items[0].Description, "3 videos downloaded, 1 failed") {
		t.Errorf("unexpected description: %q", feed.Items[0].Description)
	}
	if !strings.Contains(feed.Items[1].Description, "could not be resolved") {
		t.Errorf("unexpected description for failed resolution: %q", feed.Items[1].Description)
	}
	if feed.Updated != finished {
		t.Errorf("expected feed updated time %v, got %v", finished, feed.Updated)
	}

	if _, err := feed.ToRss(); err != nil {
		t.Errorf("feed does not render to RSS: %v", err)
	}
}

func TestGenerateFeed_Empty(t *testing.T) {
	feed, err := New(&staticHistory{}).GenerateFeed("http://localhost:8080")
	if err != nil {
		t.Fatalf("GenerateFeed failed: %v", err)
	}
	if len(feed.Items) != 0 {
		t.Errorf("expected empty feed, got %d items", len(feed.Items))
	}
}
