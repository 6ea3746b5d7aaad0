package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"

	mediaDomain "github.com/okuznetsov/tgarchiver/internal/modules/media/domain"
)

// fakeHistoryInvoker serves canned history pages keyed by the request's
// OffsetID.
type fakeHistoryInvoker struct {
	t        *testing.T
	pages    map[int][]tg.MessageClass
	requests int
}

func (f *fakeHistoryInvoker) Invoke(_ context.Context, input bin.Encoder, output bin.Decoder) error {
	f.requests++
	req, ok := input.(*tg.MessagesGetHistoryRequest)
	if !ok {
		f.t.Fatalf("unexpected request %T", input)
	}
	box, ok := output.(*tg.MessagesMessagesBox)
	if !ok {
		f.t.Fatalf("unexpected result %T", output)
	}
	box.Messages = &tg.MessagesChannelMessages{Messages: f.pages[req.OffsetID]}
	return nil
}

func collectVideos(t *testing.T, inv *fakeHistoryInvoker) []int {
	t.Helper()
	c := &Client{api: tg.NewClient(inv)}
	var got []int
	err := c.EachVideo(context.Background(), &mediaDomain.ResolvedChannel{ID: 1, AccessHash: 2}, func(item mediaDomain.VideoItem) error {
		got = append(got, item.MessageID)
		return nil
	})
	if err != nil {
		t.Fatalf("EachVideo failed: %v", err)
	}
	return got
}

func videoMessage(id int, doc *tg.Document) *tg.Message {
	return &tg.Message{
		ID:    id,
		Media: &tg.MessageMediaDocument{Document: doc},
	}
}

func TestVideoItem(t *testing.T) {
	tests := []struct {
		name   string
		msg    *tg.Message
		wantOK bool
	}{
		{
			name:   "no media",
			msg:    &tg.Message{ID: 1},
			wantOK: false,
		},
		{
			name:   "photo",
			msg:    &tg.Message{ID: 2, Media: &tg.MessageMediaPhoto{}},
			wantOK: false,
		},
		{
			name: "document without video attribute",
			msg: videoMessage(3, &tg.Document{
				ID:       30,
				MimeType: "application/pdf",
				Attributes: []tg.DocumentAttributeClass{
					&tg.DocumentAttributeFilename{FileName: "paper.pdf"},
				},
			}),
			wantOK: false,
		},
		{
			name: "native video mime",
			msg: videoMessage(4, &tg.Document{
				ID:       40,
				MimeType: "video/mp4",
			}),
			wantOK: true,
		},
		{
			name: "generic document with video attribute",
			msg: videoMessage(5, &tg.Document{
				ID:       50,
				MimeType: "application/octet-stream",
				Attributes: []tg.DocumentAttributeClass{
					&tg.DocumentAttributeVideo{Duration: 10},
				},
			}),
			wantOK: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			item, ok := videoItem(test.msg)
			if ok != test.wantOK {
				t.Fatalf("videoItem() ok = %v, expected %v", ok, test.wantOK)
			}
			if ok && item.MessageID != test.msg.ID {
				t.Errorf("item.MessageID = %d, expected %d", item.MessageID, test.msg.ID)
			}
		})
	}
}

func TestVideoItem_CarriesDocumentFields(t *testing.T) {
	msg := videoMessage(7, &tg.Document{
		ID:            70,
		AccessHash:    71,
		FileReference: []byte{1, 2, 3},
		MimeType:      "video/mp4",
		Size:          4096,
		Attributes: []tg.DocumentAttributeClass{
			&tg.DocumentAttributeVideo{Duration: 12},
			&tg.DocumentAttributeFilename{FileName: "clip.mp4"},
		},
	})

	item, ok := videoItem(msg)
	if !ok {
		t.Fatal("expected a video item")
	}
	if item.DocumentID != 70 || item.AccessHash != 71 || item.Size != 4096 {
		t.Errorf("document fields not carried: %+v", item)
	}
	if item.FileName != "clip.mp4" {
		t.Errorf("expected filename clip.mp4, got %q", item.FileName)
	}
}

func TestEachVideo_WalksOldestToNewestAcrossPages(t *testing.T) {
	doc := &tg.Document{ID: 9, MimeType: "video/mp4"}
	inv := &fakeHistoryInvoker{t: t, pages: map[int][]tg.MessageClass{
		// Pages arrive newest-first, service messages interleaved
		1: {videoMessage(3, doc), &tg.MessageService{ID: 2}, videoMessage(1, doc)},
		4: {videoMessage(5, doc), videoMessage(4, doc)},
	}}

	got := collectVideos(t, inv)

	want := []int{1, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("videos out of order: expected %v, got %v", want, got)
		}
	}
	if inv.requests != 3 {
		t.Errorf("expected 3 history requests, got %d", inv.requests)
	}
}

func TestEachVideo_AdvancesPastServiceOnlyPages(t *testing.T) {
	// A full page of joins and pins, then a video above it. The walk must
	// keep paging instead of declaring the history exhausted.
	page := make([]tg.MessageClass, 0, historyPageSize)
	for id := historyPageSize; id >= 1; id-- {
		page = append(page, &tg.MessageService{ID: id})
	}
	doc := &tg.Document{ID: 9, MimeType: "video/mp4"}
	inv := &fakeHistoryInvoker{t: t, pages: map[int][]tg.MessageClass{
		1:                   page,
		historyPageSize + 1: {videoMessage(historyPageSize+1, doc)},
	}}

	got := collectVideos(t, inv)

	if len(got) != 1 || got[0] != historyPageSize+1 {
		t.Errorf("expected video %d beyond the service-only page, got %v", historyPageSize+1, got)
	}
	if inv.requests != 3 {
		t.Errorf("expected 3 history requests, got %d", inv.requests)
	}
}

func TestEachVideo_CallbackErrorStopsWalk(t *testing.T) {
	doc := &tg.Document{ID: 9, MimeType: "video/mp4"}
	inv := &fakeHistoryInvoker{t: t, pages: map[int][]tg.MessageClass{
		1: {videoMessage(2, doc), videoMessage(1, doc)},
		3: {videoMessage(3, doc)},
	}}
	c := &Client{api: tg.NewClient(inv)}

	stop := errors.New("stop")
	err := c.EachVideo(context.Background(), &mediaDomain.ResolvedChannel{ID: 1, AccessHash: 2}, func(mediaDomain.VideoItem) error {
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("expected callback error to propagate, got %v", err)
	}
	if inv.requests != 1 {
		t.Errorf("expected the walk to stop after one page, got %d requests", inv.requests)
	}
}

func TestDownloadFileName(t *testing.T) {
	tests := []struct {
		name     string
		item     mediaDomain.VideoItem
		expected string
	}{
		{"document filename", mediaDomain.VideoItem{MessageID: 1, FileName: "clip.mp4"}, "clip.mp4"},
		{"path stripped", mediaDomain.VideoItem{MessageID: 1, FileName: "../../etc/clip.mp4"}, "clip.mp4"},
		{"fallback from message id", mediaDomain.VideoItem{MessageID: 42, MimeType: "video/webm"}, "video_42.webm"},
		{"unknown mime", mediaDomain.VideoItem{MessageID: 43, MimeType: "video/x-nonexistent"}, "video_43.mp4"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := downloadFileName(test.item)
			if result != test.expected {
				t.Errorf("downloadFileName(%+v) = %q, expected %q", test.item, result, test.expected)
			}
		})
	}
}
