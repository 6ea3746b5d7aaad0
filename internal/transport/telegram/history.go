package telegram

import (
	"context"
	"strings"

	"github.com/gotd/td/tg"
	"github.com/samber/oops"

	mediaDomain "github.com/okuznetsov/tgarchiver/internal/modules/media/domain"
)

const historyPageSize = 50

// EachVideo walks the channel's full message history, strictly oldest to
// newest, and calls fn for every video attachment. The walk is lazy: pages
// are fetched as they are consumed, and an error from fn stops it. There is
// no resume cursor; restarting means walking from the beginning.
func (c *Client) EachVideo(ctx context.Context, ch *mediaDomain.ResolvedChannel, fn func(mediaDomain.VideoItem) error) error {
	peer := &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}

	// Paging oldest-to-newest: anchor just above the highest ID seen and
	// shift the window toward newer messages.
	offsetID := 1
	for {
		history, err := c.api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
			Peer:      peer,
			OffsetID:  offsetID,
			AddOffset: -historyPageSize,
			Limit:     historyPageSize,
		})
		if err != nil {
			return oops.With("channel", ch.Title).Wrap(err)
		}

		var raw []tg.MessageClass
		switch h := history.(type) {
		case *tg.MessagesChannelMessages:
			raw = h.Messages
		case *tg.MessagesMessagesSlice:
			raw = h.Messages
		case *tg.MessagesMessages:
			raw = h.Messages
		}
		if len(raw) == 0 {
			return nil
		}

		// Advance the anchor from every entry in the page, service messages
		// included. A page of nothing but joins and pins must still move the
		// window, or everything above it would be skipped.
		maxID := 0
		for _, m := range raw {
			nonEmpty, ok := m.AsNotEmpty()
			if !ok {
				continue
			}
			if id := nonEmpty.GetID(); id >= offsetID && id > maxID {
				maxID = id
			}
		}

		// The server returns pages newest-first; iterate in reverse for
		// chronological order. The window near the top of the history may
		// overlap already-seen IDs, so skip anything below the anchor.
		for i := len(raw) - 1; i >= 0; i-- {
			msg, ok := raw[i].(*tg.Message)
			if !ok || msg.ID < offsetID {
				continue
			}
			if item, ok := videoItem(msg); ok {
				if err := fn(item); err != nil {
					return err
				}
			}
		}

		if maxID == 0 {
			// Nothing new in this page: history exhausted
			return nil
		}
		offsetID = maxID + 1
	}
}

// videoItem extracts a downloadable video from a message. A video qualifies
// if its document carries a video MIME type or a DocumentAttributeVideo
// attribute.
func videoItem(msg *tg.Message) (mediaDomain.VideoItem, bool) {
	media, ok := msg.Media.(*tg.MessageMediaDocument)
	if !ok {
		return mediaDomain.VideoItem{}, false
	}
	doc, ok := media.Document.AsNotEmpty()
	if !ok {
		return mediaDomain.VideoItem{}, false
	}
	if !isVideoDocument(doc) {
		return mediaDomain.VideoItem{}, false
	}

	return mediaDomain.VideoItem{
		MessageID:     msg.ID,
		DocumentID:    doc.ID,
		AccessHash:    doc.AccessHash,
		FileReference: doc.FileReference,
		FileName:      documentFileName(doc),
		MimeType:      doc.MimeType,
		Size:          doc.Size,
	}, true
}

func isVideoDocument(doc *tg.Document) bool {
	if strings.HasPrefix(doc.MimeType, "video/") {
		return true
	}
	for _, attr := range doc.Attributes {
		if _, ok := attr.(*tg.DocumentAttributeVideo); ok {
			return true
		}
	}
	return false
}

func documentFileName(doc *tg.Document) string {
	for _, attr := range doc.Attributes {
		if a, ok := attr.(*tg.DocumentAttributeFilename); ok {
			return a.FileName
		}
	}
	return ""
}
