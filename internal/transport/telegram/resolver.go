package telegram

import (
	"context"

	"github.com/gotd/td/tg"
	"github.com/samber/oops"

	mediaDomain "github.com/okuznetsov/tgarchiver/internal/modules/media/domain"
	"github.com/okuznetsov/tgarchiver/internal/shared/errors"
)

// Resolve maps a normalized channel reference to an addressable handle.
// Private and unknown references fail here; the handle is never cached.
func (c *Client) Resolve(ctx context.Context, ref string) (*mediaDomain.ResolvedChannel, error) {
	resolved, err := c.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: ref,
	})
	if err != nil {
		return nil, oops.With("channel", ref).Wrap(err)
	}

	for _, chat := range resolved.Chats {
		switch ch := chat.(type) {
		case *tg.Channel:
			return &mediaDomain.ResolvedChannel{
				ID:         ch.ID,
				AccessHash: ch.AccessHash,
				Title:      ch.Title,
			}, nil
		case *tg.Chat:
			return nil, oops.With("channel", ref).Wrap(errors.ErrNotAChannel)
		}
	}

	return nil, oops.With("channel", ref).Wrap(errors.ErrChannelNotFound)
}
