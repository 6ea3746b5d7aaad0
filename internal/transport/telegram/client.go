package telegram

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/samber/oops"

	"github.com/okuznetsov/tgarchiver/internal/shared/config"
)

// Client wraps the gotd MTProto client: session, authentication, update
// dispatch and the raw API surface used by the resolver, enumerator,
// downloader and notifier.
type Client struct {
	cfg     *config.Config
	client  *telegram.Client
	api     *tg.Client
	handler *Handler
	selfID  int64
}

// NewClient creates an unconnected client.
func NewClient(cfg *config.Config) *Client {
	return &Client{cfg: cfg}
}

// SetHandler wires the command handler. Must be called before Run.
func (c *Client) SetHandler(h *Handler) {
	c.handler = h
}

// SelfID returns the authenticated account's user ID.
func (c *Client) SelfID() int64 {
	return c.selfID
}

// Run connects, authenticates if necessary and listens for updates until the
// context is canceled.
func (c *Client) Run(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(c.cfg.SessionFile), 0755); err != nil {
		return oops.With("session_file", c.cfg.SessionFile).Wrap(err)
	}
	// Destination directory exists before listening begins
	if err := os.MkdirAll(c.cfg.VideosDir, 0755); err != nil {
		return oops.With("videos_dir", c.cfg.VideosDir).Wrap(err)
	}

	dispatcher := tg.NewUpdateDispatcher()
	if c.handler != nil {
		c.handler.Attach(dispatcher)
	}

	c.client = telegram.NewClient(c.cfg.APIID, c.cfg.APIHash, telegram.Options{
		SessionStorage: &FileSessionStorage{Path: c.cfg.SessionFile},
		UpdateHandler:  dispatcher,
	})

	return c.client.Run(ctx, func(ctx context.Context) error {
		c.api = c.client.API()

		flow := auth.NewFlow(terminalAuth{phone: c.cfg.PhoneNumber}, auth.SendCodeOptions{})
		if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
			return oops.With("context", "authentication").Wrap(err)
		}

		self, err := c.client.Self(ctx)
		if err != nil {
			return oops.With("context", "fetching self").Wrap(err)
		}
		c.selfID = self.ID
		slog.Info("Logged in, listening for commands", "user_id", self.ID, "username", self.Username)

		<-ctx.Done()
		return ctx.Err()
	})
}
