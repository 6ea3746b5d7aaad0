package telegram

import (
	"context"
	"crypto/rand"
	"encoding/binary"

	"github.com/gotd/td/tg"
	"github.com/samber/oops"

	jobDomain "github.com/okuznetsov/tgarchiver/internal/modules/job/domain"
)

// Reply sends a reply on the trigger message.
func (c *Client) Reply(ctx context.Context, trigger jobDomain.Trigger, text string) error {
	peer, err := triggerPeer(trigger)
	if err != nil {
		return err
	}
	_, err = c.api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
		Peer:     peer,
		Message:  text,
		RandomID: randomID(),
		ReplyTo:  &tg.InputReplyToMessage{ReplyToMsgID: trigger.MessageID},
	})
	if err != nil {
		return oops.With("message_id", trigger.MessageID).Wrap(err)
	}
	return nil
}

// Edit rewrites the trigger message's text. Telegram enforces an edit time
// window, so this can fail long after the command was sent.
func (c *Client) Edit(ctx context.Context, trigger jobDomain.Trigger, text string) error {
	peer, err := triggerPeer(trigger)
	if err != nil {
		return err
	}
	req := &tg.MessagesEditMessageRequest{
		Peer: peer,
		ID:   trigger.MessageID,
	}
	req.SetMessage(text)
	if _, err := c.api.MessagesEditMessage(ctx, req); err != nil {
		return oops.With("message_id", trigger.MessageID).Wrap(err)
	}
	return nil
}

func triggerPeer(trigger jobDomain.Trigger) (tg.InputPeerClass, error) {
	peer, ok := trigger.Peer.(tg.InputPeerClass)
	if !ok {
		return nil, oops.Errorf("trigger carries no addressable peer")
	}
	return peer, nil
}

func randomID() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}
