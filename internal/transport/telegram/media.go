package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gotd/td/tg"
	"github.com/samber/oops"

	mediaDomain "github.com/okuznetsov/tgarchiver/internal/modules/media/domain"
)

const downloadChunkSize = 1024 * 1024 // 1MB

// Download transfers one video into destDir, chunk by chunk. The partial
// file is removed on any error.
func (c *Client) Download(ctx context.Context, item mediaDomain.VideoItem, destDir string) (string, error) {
	destPath := filepath.Join(destDir, downloadFileName(item))

	f, err := os.Create(destPath)
	if err != nil {
		return "", oops.With("path", destPath).Wrap(err)
	}
	defer f.Close()

	loc := &tg.InputDocumentFileLocation{
		ID:            item.DocumentID,
		AccessHash:    item.AccessHash,
		FileReference: item.FileReference,
	}

	offset := int64(0)
	for {
		result, err := c.api.UploadGetFile(ctx, &tg.UploadGetFileRequest{
			Location: loc,
			Offset:   offset,
			Limit:    downloadChunkSize,
		})
		if err != nil {
			os.Remove(destPath)
			return "", oops.With("message_id", item.MessageID, "offset", offset).Wrap(err)
		}

		file, ok := result.(*tg.UploadFile)
		if !ok {
			os.Remove(destPath)
			return "", oops.With("message_id", item.MessageID).Errorf("unexpected upload response %T", result)
		}

		if len(file.Bytes) == 0 {
			break
		}
		if _, err := f.Write(file.Bytes); err != nil {
			os.Remove(destPath)
			return "", oops.With("path", destPath).Wrap(err)
		}

		if len(file.Bytes) < downloadChunkSize {
			break
		}
		offset += int64(len(file.Bytes))
	}

	return destPath, nil
}

var videoExtensions = map[string]string{
	"video/mp4":        ".mp4",
	"video/webm":       ".webm",
	"video/quicktime":  ".mov",
	"video/x-matroska": ".mkv",
	"video/mpeg":       ".mpeg",
}

// downloadFileName prefers the document's own filename and falls back to a
// name derived from the message ID and MIME type.
func downloadFileName(item mediaDomain.VideoItem) string {
	if item.FileName != "" {
		return filepath.Base(item.FileName)
	}
	ext, ok := videoExtensions[item.MimeType]
	if !ok {
		ext = ".mp4"
	}
	return fmt.Sprintf("video_%d%s", item.MessageID, ext)
}
