package goals

import (
	"context"
	"sync"
	"time"

	appLog "goalcal/internal/log"
	"goalcal/internal/model"
)

// Feed is an ICS source whose events are merged into the collection.
type Feed struct {
	URL   string
	Color string
}

// Snapshot is an immutable view of the goal collection. Once published it
// is never modified; reloading produces a new Snapshot.
type Snapshot struct {
	Goals    []*model.Goal
	Version  uint64
	LoadedAt time.Time
}

// Loader builds snapshots from the store followed by every feed, in that
// order, and keeps the latest one for concurrent readers.
type Loader struct {
	store   *Store
	feeds   []Feed
	fetcher *Fetcher

	mu      sync.RWMutex
	current *Snapshot
}

func NewLoader(store *Store, feeds []Feed) *Loader {
	return &Loader{
		store:   store,
		feeds:   feeds,
		fetcher: NewFetcher(),
		current: &Snapshot{Goals: []*model.Goal{}},
	}
}

// Current returns the last published snapshot.
func (l *Loader) Current() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Reload reads the store and all feeds and publishes a new snapshot.
// A store error aborts the reload and keeps the previous snapshot; a
// failing feed is logged and skipped.
func (l *Loader) Reload(ctx context.Context) (*Snapshot, error) {
	list, err := l.store.Load()
	if err != nil {
		appLog.Error("goals reload failed", err, "path", l.store.Path())
		return l.Current(), err
	}

	for _, feed := range l.feeds {
		body, fromCache, err := l.fetcher.Fetch(ctx, feed.URL)
		if err != nil {
			appLog.Error("goals feed fetch failed", err, "url", redactURL(feed.URL))
			continue
		}
		color := feed.Color
		if color == "" {
			color = DefaultColor
		}
		imported, err := ParseICS(feed.URL, body, color)
		if err != nil {
			appLog.Error("goals feed parse failed", err, "url", redactURL(feed.URL))
			continue
		}
		appLog.Debug("goals feed merged", "url", redactURL(feed.URL), "from_cache", fromCache, "count", len(imported))
		list = append(list, imported...)
	}

	l.mu.Lock()
	next := &Snapshot{
		Goals:    list,
		Version:  l.current.Version + 1,
		LoadedAt: time.Now(),
	}
	l.current = next
	l.mu.Unlock()

	appLog.Info("goals snapshot published", "version", next.Version, "goal_count", len(list))
	return next, nil
}
