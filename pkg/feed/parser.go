package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/websub-notify/pkg/domain"
)

// Parser extracts the newest video entry from an Atom notification pushed by
// the hub. YouTube feeds carry the video id in the yt extension namespace.
type Parser struct{}

// NewParser creates a new feed parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the pushed feed document and returns the first entry, or nil
// when the document has no usable entry. An empty push is a valid, ignorable
// event and not an error; malformed XML is.
func (p *Parser) Parse(data []byte) (*domain.Entry, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	if len(parsed.Items) == 0 {
		return nil, nil
	}
	item := parsed.Items[0]

	videoID := extensionValue(item, "yt", "videoId")
	if videoID == "" {
		return nil, nil // entry without a video id is not announceable
	}

	title := item.Title
	if title == "" {
		title = domain.DefaultTitle
	}

	link := item.Link
	if link == "" {
		link = domain.WatchURL(videoID)
	}

	return &domain.Entry{VideoID: videoID, Title: title, Link: link}, nil
}

// extensionValue returns the text of the first extension element with the
// given namespace prefix and name, or empty string
func extensionValue(item *gofeed.Item, prefix, name string) string {
	exts, ok := item.Extensions[prefix]
	if !ok {
		return ""
	}
	vals, ok := exts[name]
	if !ok || len(vals) == 0 {
		return ""
	}
	return vals[0].Value
}
