package domain

import "time"

// Subscription represents a WebSub subscription to a single topic.
// Immutable for the process lifetime, re-asserted by periodic renewals.
type Subscription struct {
	Topic    string // feed URL the subscription is registered against
	Callback string // publicly reachable endpoint the hub pushes to
	Secret   string // optional shared secret, empty disables signing
}

// Announcement represents a dispatched notification, kept for history only.
// The dedup decision never consults these records.
type Announcement struct {
	ID        int64
	VideoID   string
	Title     string
	Link      string
	CreatedAt time.Time
}
