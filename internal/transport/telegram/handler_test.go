package telegram

import (
	"context"
	"testing"

	"github.com/gotd/td/tg"

	jobDomain "github.com/okuznetsov/tgarchiver/internal/modules/job/domain"
)

type fakeSubmitter struct {
	jobs []*jobDomain.Job
}

func (s *fakeSubmitter) Submit(job *jobDomain.Job) (bool, error) {
	s.jobs = append(s.jobs, job)
	return false, nil
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text    string
		wantRef string
		wantOK  bool
	}{
		{"download https://t.me/foo", "https://t.me/foo", true},
		{"DOWNLOAD t.me/foo", "t.me/foo", true},
		{"  download foo  ", "foo", true},
		{"download ", "", false},
		{"download", "", false},
		{"downloadfoo", "", false},
		{"get https://t.me/foo", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		ref, ok := parseCommand(test.text)
		if ok != test.wantOK || ref != test.wantRef {
			t.Errorf("parseCommand(%q) = (%q, %v), expected (%q, %v)",
				test.text, ref, ok, test.wantRef, test.wantOK)
		}
	}
}

func TestInputPeer(t *testing.T) {
	entities := tg.Entities{
		Users: map[int64]*tg.User{
			100: {ID: 100, AccessHash: 11},
		},
		Channels: map[int64]*tg.Channel{
			200: {ID: 200, AccessHash: 22},
		},
	}

	if peer := inputPeer(entities, &tg.PeerUser{UserID: 100}); peer == nil {
		t.Error("expected user peer, got nil")
	} else if u, ok := peer.(*tg.InputPeerUser); !ok || u.AccessHash != 11 {
		t.Errorf("unexpected user peer: %#v", peer)
	}

	if peer := inputPeer(entities, &tg.PeerChannel{ChannelID: 200}); peer == nil {
		t.Error("expected channel peer, got nil")
	} else if ch, ok := peer.(*tg.InputPeerChannel); !ok || ch.AccessHash != 22 {
		t.Errorf("unexpected channel peer: %#v", peer)
	}

	if peer := inputPeer(entities, &tg.PeerChat{ChatID: 300}); peer == nil {
		t.Error("expected chat peer, got nil")
	}

	// Unknown entities cannot be addressed
	if peer := inputPeer(entities, &tg.PeerUser{UserID: 999}); peer != nil {
		t.Errorf("expected nil for unknown user, got %#v", peer)
	}
}

func selfEntities() tg.Entities {
	return tg.Entities{Users: map[int64]*tg.User{100: {ID: 100, AccessHash: 11}}}
}

func TestHandle_IgnoresMessagesFromOthers(t *testing.T) {
	submitter := &fakeSubmitter{}
	h := NewHandler(submitter, nil)

	msg := &tg.Message{
		ID:      1,
		Out:     false, // inbound, not the account's own identity
		Message: "download https://t.me/foo",
		PeerID:  &tg.PeerUser{UserID: 100},
	}
	if err := h.handle(context.Background(), selfEntities(), msg); err != nil {
		t.Fatalf("handle returned error: %v", err)
	}
	if len(submitter.jobs) != 0 {
		t.Errorf("message from another identity must never dispatch a job, got %d", len(submitter.jobs))
	}
}

func TestHandle_DispatchesNormalizedJob(t *testing.T) {
	submitter := &fakeSubmitter{}
	h := NewHandler(submitter, nil)

	msg := &tg.Message{
		ID:      2,
		Out:     true,
		Message: "download https://t.me/foo",
		PeerID:  &tg.PeerUser{UserID: 100},
	}
	if err := h.handle(context.Background(), selfEntities(), msg); err != nil {
		t.Fatalf("handle returned error: %v", err)
	}
	if len(submitter.jobs) != 1 {
		t.Fatalf("expected one job, got %d", len(submitter.jobs))
	}
	job := submitter.jobs[0]
	if job.ChannelRef != "foo" {
		t.Errorf("expected normalized reference foo, got %q", job.ChannelRef)
	}
	if job.Trigger.MessageID != 2 {
		t.Errorf("trigger message id = %d, expected 2", job.Trigger.MessageID)
	}
}

func TestHandle_IgnoresNonCommands(t *testing.T) {
	submitter := &fakeSubmitter{}
	h := NewHandler(submitter, nil)

	for _, text := range []string{"hello", "download ", "download"} {
		msg := &tg.Message{
			ID:      3,
			Out:     true,
			Message: text,
			PeerID:  &tg.PeerUser{UserID: 100},
		}
		if err := h.handle(context.Background(), selfEntities(), msg); err != nil {
			t.Fatalf("handle(%q) returned error: %v", text, err)
		}
	}
	if len(submitter.jobs) != 0 {
		t.Errorf("non-commands must not dispatch jobs, got %d", len(submitter.jobs))
	}
}
