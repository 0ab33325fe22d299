// internal/domain/ui/notifications.go
package ui

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// NotificationType mirrors the toast severities of the web client
type NotificationType string

const (
	TypeSuccess NotificationType = "success"
	TypeError   NotificationType = "error"
	TypeInfo    NotificationType = "info"
)

// Notification is one transient feed entry
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}

// Feed holds the per-session notification lists. Entries are transient:
// the feed is capped and never persisted.
type Feed struct {
	mu    sync.Mutex
	limit int
	feeds map[string][]Notification
}

// NewFeed creates a notification feed with the given per-session cap
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 50
	}
	return &Feed{
		limit: limit,
		feeds: make(map[string][]Notification),
	}
}

// Add appends a notification to a session's feed
func (f *Feed) Add(sessionID string, typ NotificationType, title, message string) Notification {
	n := Notification{
		ID:        uuid.New().String(),
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	feed := append(f.feeds[sessionID], n)
	if len(feed) > f.limit {
		feed = feed[len(feed)-f.limit:]
	}
	f.feeds[sessionID] = feed
	return n
}

// Success records a success notification
func (f *Feed) Success(sessionID, title, message string) {
	f.Add(sessionID, TypeSuccess, title, message)
}

// Error records an error notification
func (f *Feed) Error(sessionID, title, message string) {
	f.Add(sessionID, TypeError, title, message)
}

// List returns a copy of a session's feed, newest last
func (f *Feed) List(sessionID string) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	feed := f.feeds[sessionID]
	out := make([]Notification, len(feed))
	copy(out, feed)
	return out
}

// Dismiss removes one notification; dismissing an absent id is a no-op
func (f *Feed) Dismiss(sessionID, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	feed := f.feeds[sessionID]
	filtered := feed[:0]
	for _, n := range feed {
		if n.ID != id {
			filtered = append(filtered, n)
		}
	}
	f.feeds[sessionID] = filtered
}

// Clear drops a session's whole feed
func (f *Feed) Clear(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.feeds, sessionID)
}
