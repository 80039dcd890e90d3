package feed

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:yt="http://www.youtube.com/xml/schemas/2015">
	<title>Test Channel uploads</title>
	%s
</feed>`

func TestParser_Parse(t *testing.T) {
	doc := fmt.Sprintf(feedTemplate, `
	<entry>
		<id>yt:video:dQw4w9WgXcQ</id>
		<yt:videoId>dQw4w9WgXcQ</yt:videoId>
		<title>Never Gonna Give You Up</title>
		<link rel="alternate" href="https://www.youtube.com/watch?v=dQw4w9WgXcQ"/>
		<updated>2024-01-02T15:04:05Z</updated>
	</entry>`)

	entry, err := NewParser().Parse([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, "dQw4w9WgXcQ", entry.VideoID)
	assert.Equal(t, "Never Gonna Give You Up", entry.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", entry.Link)
}

func TestParser_Parse_NoEntry(t *testing.T) {
	doc := fmt.Sprintf(feedTemplate, "")

	entry, err := NewParser().Parse([]byte(doc))
	require.NoError(t, err, "empty push is a valid event, not an error")
	assert.Nil(t, entry)
}

func TestParser_Parse_NoVideoID(t *testing.T) {
	doc := fmt.Sprintf(feedTemplate, `
	<entry>
		<id>some-id</id>
		<title>Entry without a video id</title>
	</entry>`)

	entry, err := NewParser().Parse([]byte(doc))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestParser_Parse_DefaultTitle(t *testing.T) {
	doc := fmt.Sprintf(feedTemplate, `
	<entry>
		<id>yt:video:abc123</id>
		<yt:videoId>abc123</yt:videoId>
		<link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
	</entry>`)

	entry, err := NewParser().Parse([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "(no title)", entry.Title)
}

func TestParser_Parse_SynthesizedLink(t *testing.T) {
	doc := fmt.Sprintf(feedTemplate, `
	<entry>
		<id>yt:video:abc123</id>
		<yt:videoId>abc123</yt:videoId>
		<title>No explicit link</title>
	</entry>`)

	entry, err := NewParser().Parse([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", entry.Link)
}

func TestParser_Parse_MalformedXML(t *testing.T) {
	_, err := NewParser().Parse([]byte("this is not xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse feed")
}
