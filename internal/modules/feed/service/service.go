package service

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	jobDomain "github.com/okuznetsov/tgarchiver/internal/modules/job/domain"
)

// HistorySource provides snapshots of recently finished jobs, newest first.
type HistorySource interface {
	Recent() []jobDomain.Snapshot
}

// Service builds an RSS feed of completed download jobs. The feed reflects
// only the in-memory history of the current process.
type Service struct {
	history HistorySource
}

// New creates a feed service.
func New(history HistorySource) *Service {
	return &Service{history: history}
}

// GenerateFeed renders the job history as an RSS feed.
func (s *Service) GenerateFeed(baseURL string) (*feeds.Feed, error) {
	recent := s.history.Recent()

	updated := time.Time{}
	if len(recent) > 0 && recent[0].FinishedAt != nil {
		updated = *recent[0].FinishedAt
	}

	feed := &feeds.Feed{
		Title:       "Channel Video Archiver - Completed Jobs",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/feed", baseURL)},
		Description: "Download jobs finished by this archiver instance",
		Updated:     updated,
	}

	var items []*feeds.Item
	for _, snap := range recent {
		items = append(items, s.jobToFeedItem(snap, baseURL))
	}

	feed.Items = items
	return feed, nil
}

func (s *Service) jobToFeedItem(snap jobDomain.Snapshot, baseURL string) *feeds.Item {
	created := snap.StartedAt
	if snap.FinishedAt != nil {
		created = *snap.FinishedAt
	}

	description := fmt.Sprintf("%d videos downloaded, %d failed", snap.ItemsProcessed, len(snap.Failures))
	if snap.State == jobDomain.JobStateResolutionFailed {
		description = "channel could not be resolved"
	}

	return &feeds.Item{
		Title:       fmt.Sprintf("%s — %s", snap.ChannelRef, snap.State),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/status", baseURL)},
		Description: description,
		Created:     created,
		Id:          snap.ID,
	}
}
