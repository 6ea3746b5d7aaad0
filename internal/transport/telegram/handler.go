package telegram

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/gotd/td/tg"

	channelDomain "github.com/okuznetsov/tgarchiver/internal/modules/channel/domain"
	jobDomain "github.com/okuznetsov/tgarchiver/internal/modules/job/domain"
	"github.com/okuznetsov/tgarchiver/internal/shared/errors"
)

const commandPrefix = "download "

// JobSubmitter accepts a job for execution. The bool reports whether the job
// was queued behind other work.
type JobSubmitter interface {
	Submit(job *jobDomain.Job) (bool, error)
}

// Handler is the command interpreter. It sees every inbound update, keeps
// only messages sent by the account itself, and dispatches download jobs.
type Handler struct {
	jobs   JobSubmitter
	client *Client
}

// NewHandler creates a command handler.
func NewHandler(jobs JobSubmitter, client *Client) *Handler {
	return &Handler{jobs: jobs, client: client}
}

// Attach registers the handler on the update dispatcher.
func (h *Handler) Attach(dispatcher tg.UpdateDispatcher) {
	dispatcher.OnNewMessage(func(ctx context.Context, e tg.Entities, update *tg.UpdateNewMessage) error {
		return h.handle(ctx, e, update.Message)
	})
	dispatcher.OnNewChannelMessage(func(ctx context.Context, e tg.Entities, update *tg.UpdateNewChannelMessage) error {
		return h.handle(ctx, e, update.Message)
	})
}

func (h *Handler) handle(ctx context.Context, e tg.Entities, m tg.MessageClass) error {
	msg, ok := m.(*tg.Message)
	if !ok {
		return nil
	}
	// Hard filter: only messages from the account's own identity
	if !msg.Out {
		return nil
	}

	raw, ok := parseCommand(msg.Message)
	if !ok {
		return nil
	}
	ref := channelDomain.Normalize(raw)

	peer := inputPeer(e, msg.PeerID)
	if peer == nil {
		slog.Warn("Cannot address command peer, dropping command", "message_id", msg.ID)
		return nil
	}

	job := jobDomain.NewJob(ref, jobDomain.Trigger{MessageID: msg.ID, Peer: peer})
	queued, err := h.jobs.Submit(job)
	switch {
	case stderrors.Is(err, errors.ErrJobInFlight):
		h.replyBestEffort(ctx, job.Trigger, "busy: a download job is already running")
	case stderrors.Is(err, errors.ErrQueueFull):
		h.replyBestEffort(ctx, job.Trigger, "busy: the download queue is full")
	case err != nil:
		slog.Error("Failed to submit job", "channel", ref, "error", err)
	case queued:
		h.replyBestEffort(ctx, job.Trigger, "queued: will start after the current job")
	default:
		slog.Info("Download command accepted", "channel", ref, "message_id", msg.ID)
	}
	return nil
}

func (h *Handler) replyBestEffort(ctx context.Context, trigger jobDomain.Trigger, text string) {
	if err := h.client.Reply(ctx, trigger, text); err != nil {
		slog.Error("Failed to reply to command", "error", err)
	}
}

// parseCommand recognizes "download <reference>" in a self-sent message and
// extracts the raw reference. A bare "download" with no reference is not a
// command.
func parseCommand(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(strings.ToLower(trimmed), commandPrefix) {
		return "", false
	}
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) < 2 {
		return "", false
	}
	ref := strings.TrimSpace(parts[1])
	if ref == "" {
		return "", false
	}
	return ref, true
}

// inputPeer builds an addressable peer for the message's chat from the
// update entities. Returns nil when the entities lack the access hash.
func inputPeer(e tg.Entities, peer tg.PeerClass) tg.InputPeerClass {
	switch p := peer.(type) {
	case *tg.PeerUser:
		if u, ok := e.Users[p.UserID]; ok {
			return &tg.InputPeerUser{UserID: u.ID, AccessHash: u.AccessHash}
		}
	case *tg.PeerChat:
		return &tg.InputPeerChat{ChatID: p.ChatID}
	case *tg.PeerChannel:
		if ch, ok := e.Channels[p.ChannelID]; ok {
			return &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}
		}
	}
	return nil
}
