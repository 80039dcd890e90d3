package domain

import "fmt"

// DefaultTitle is used when a feed entry carries no title
const DefaultTitle = "(no title)"

// watchURLTemplate builds a canonical video URL from a video id
const watchURLTemplate = "https://www.youtube.com/watch?v=%s"

// Entry represents a single video entry extracted from a feed notification
type Entry struct {
	VideoID string
	Title   string
	Link    string
}

// WatchURL returns the canonical video URL for the given video id
func WatchURL(videoID string) string {
	return fmt.Sprintf(watchURLTemplate, videoID)
}
