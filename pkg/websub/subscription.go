package websub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/websub-notify/pkg/domain"
)

// Manager maintains a single WebSub subscription: the initial registration
// and unconditional periodic renewals. A failed renewal is logged and retried
// at the next cycle, the loop itself never stops until the context is done.
type Manager struct {
	sub      domain.Subscription
	hubURL   string
	interval time.Duration
	client   *http.Client
}

// Config holds subscription manager configuration
type Config struct {
	HubURL       string
	Subscription domain.Subscription
	Interval     time.Duration // renewal period, defaults to 12h
	Timeout      time.Duration // per-request timeout, defaults to 30s
}

// NewManager creates a subscription manager for a single topic
func NewManager(cfg Config) *Manager {
	if cfg.Interval == 0 {
		cfg.Interval = 12 * time.Hour
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Manager{
		sub:      cfg.Subscription,
		hubURL:   cfg.HubURL,
		interval: cfg.Interval,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Subscribe sends a subscription request to the hub. The hub confirms the
// callback asynchronously via the challenge handshake, so any of 200, 202
// and 204 counts as accepted here.
func (m *Manager) Subscribe(ctx context.Context) error {
	form := url.Values{
		"hub.mode":     {"subscribe"},
		"hub.topic":    {m.sub.Topic},
		"hub.callback": {m.sub.Callback},
		"hub.verify":   {"async"},
	}
	if m.sub.Secret != "" {
		form.Set("hub.secret", m.sub.Secret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.hubURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create subscribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("subscribe to hub: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		lgr.Printf("[INFO] subscribe request accepted by hub (%d) for %s", resp.StatusCode, m.sub.Topic)
		return nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("hub rejected subscribe request: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// Run subscribes immediately and then re-subscribes every interval until the
// context is cancelled. Renewal errors are logged only, the next cycle is the
// sole recovery mechanism against a silently expired subscription.
func (m *Manager) Run(ctx context.Context) {
	if err := m.Subscribe(ctx); err != nil {
		lgr.Printf("[WARN] initial subscribe failed: %v", err)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] subscription manager stopped")
			return
		case <-ticker.C:
			if err := m.Subscribe(ctx); err != nil {
				lgr.Printf("[WARN] renewal failed, will retry in %v: %v", m.interval, err)
			}
		}
	}
}
