package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/websub-notify/pkg/domain"
)

// AnnouncementRepository records dispatched announcements for the history API
type AnnouncementRepository struct {
	db *sqlx.DB
}

// announcementSQL is the database representation of an announcement
type announcementSQL struct {
	ID        int64     `db:"id"`
	VideoID   string    `db:"video_id"`
	Title     string    `db:"title"`
	Link      string    `db:"link"`
	CreatedAt time.Time `db:"created_at"`
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Record inserts a dispatched announcement. Writes retry on SQLite lock
// contention, the webhook dispatch path and the history API share the file.
func (r *AnnouncementRepository) Record(ctx context.Context, a *domain.Announcement) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `INSERT INTO announcements (video_id, title, link) VALUES (?, ?, ?)`
		result, err := r.db.ExecContext(ctx, query, a.VideoID, a.Title, a.Link)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("record announcement: %w", err)}
		}

		id, err := result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		a.ID = id
		return nil
	})
}

// List returns the most recent announcements, newest first
func (r *AnnouncementRepository) List(ctx context.Context, limit int) ([]domain.Announcement, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []announcementSQL
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM announcements ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	result := make([]domain.Announcement, len(rows))
	for i, row := range rows {
		result[i] = domain.Announcement{
			ID:        row.ID,
			VideoID:   row.VideoID,
			Title:     row.Title,
			Link:      row.Link,
			CreatedAt: row.CreatedAt,
		}
	}
	return result, nil
}

// Count returns the total number of recorded announcements
func (r *AnnouncementRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM announcements"); err != nil {
		return 0, fmt.Errorf("count announcements: %w", err)
	}
	return count, nil
}
