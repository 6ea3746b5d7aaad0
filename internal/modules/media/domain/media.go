package domain

// ResolvedChannel is an addressable channel handle obtained from username
// resolution. It is owned for the duration of one download job and never
// cached.
type ResolvedChannel struct {
	ID         int64
	AccessHash int64
	Title      string
}

// VideoItem is one video attachment found while walking a channel's history.
// It carries everything the downloader needs to fetch the file.
type VideoItem struct {
	MessageID     int
	DocumentID    int64
	AccessHash    int64
	FileReference []byte
	FileName      string
	MimeType      string
	Size          int64
}
