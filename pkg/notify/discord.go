package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/websub-notify/pkg/domain"
)

// defaultBaseURL is the Discord REST API root
const defaultBaseURL = "https://discord.com/api/v10"

// announcementMarker prefixes every dispatched message
const announcementMarker = "📢 **New upload:**"

// Discord delivers announcements to a single Discord channel over the REST
// API. The channel handle is resolved lazily on the first send and cached for
// the process lifetime. Feed titles are untrusted input and get stripped of
// any markup before they are embedded in a message.
type Discord struct {
	token     string
	channelID string
	baseURL   string
	client    *http.Client
	sanitizer *bluemonday.Policy

	mu       sync.Mutex
	resolved bool
}

// DiscordConfig holds Discord sink configuration
type DiscordConfig struct {
	Token     string
	ChannelID string
	BaseURL   string        // overridable for tests, defaults to the public API
	Timeout   time.Duration // per-request timeout, defaults to 10s
}

// NewDiscord creates a Discord notification sink
func NewDiscord(cfg DiscordConfig) *Discord {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Discord{
		token:     cfg.Token,
		channelID: cfg.ChannelID,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		client:    &http.Client{Timeout: cfg.Timeout},
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Announce formats and sends the announcement for a single entry. A failed
// send is reported to the caller but never retried here, the entry is already
// claimed by then and a dropped message is preferred over a duplicate post.
func (d *Discord) Announce(ctx context.Context, entry domain.Entry) error {
	if err := d.resolveChannel(ctx); err != nil {
		return fmt.Errorf("resolve channel %s: %w", d.channelID, err)
	}

	title := d.sanitizer.Sanitize(entry.Title)
	msg := fmt.Sprintf("%s %s\n%s", announcementMarker, title, entry.Link)

	body, err := json.Marshal(map[string]string{"content": msg})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/channels/%s/messages", d.baseURL, d.channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create message request: %w", err)
	}
	d.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("message rejected: %d %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	lgr.Printf("[INFO] announced %q (%s)", title, entry.VideoID)
	return nil
}

// resolveChannel verifies the channel exists and is reachable with the
// configured token. Resolution happens once, later calls are no-ops.
func (d *Discord) resolveChannel(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.resolved {
		return nil
	}

	url := fmt.Sprintf("%s/channels/%s", d.baseURL, d.channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create channel request: %w", err)
	}
	d.setHeaders(req)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch channel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	d.resolved = true
	lgr.Printf("[DEBUG] resolved discord channel %s", d.channelID)
	return nil
}

func (d *Discord) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bot "+d.token)
	req.Header.Set("User-Agent", "websub-notify (https://github.com/umputun/websub-notify)")
}
