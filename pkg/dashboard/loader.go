package dashboard

import (
	"context"
	"encoding/json"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsnearme/pkg/domain"
)

//go:generate moq -out mocks/api.go -pkg mocks -skip-ensure -fmt goimports . API

// API is the remote news API used by the dashboard
type API interface {
	Health(ctx context.Context) (domain.HealthStatus, json.RawMessage, error)
	Categories(ctx context.Context) ([]domain.Category, json.RawMessage, error)
	Location(ctx context.Context) (domain.Location, json.RawMessage, error)
	Search(ctx context.Context, q domain.NewsQuery) ([]domain.NewsItem, json.RawMessage, error)
	SearchCustom(ctx context.Context, q domain.NewsQuery) ([]domain.NewsItem, json.RawMessage, error)
}

// Loader fills a fresh session with health, categories and location
type Loader struct {
	api API
}

// NewLoader makes a bootstrap loader
func NewLoader(api API) *Loader {
	return &Loader{api: api}
}

// Bootstrap runs the three initial reads concurrently and waits for all of them.
// A failed read changes only its own slot: health goes offline, categories and location keep
// their previous value. The raw response panel is not touched.
func (l *Loader) Bootstrap(ctx context.Context, store *Store) State {
	var g errgroup.Group

	g.Go(func() error {
		health := domain.HealthOffline
		status, _, err := l.api.Health(ctx)
		switch {
		case err != nil:
			lgr.Printf("[WARN] bootstrap health check failed: %v", err)
		case status.IsHealthy():
			health = domain.HealthOnline
		default:
			lgr.Printf("[DEBUG] bootstrap health status %q", status.Status)
		}
		l.apply(store, Action{Type: ActHealthSet, Health: health})
		return nil
	})

	g.Go(func() error {
		categories, _, err := l.api.Categories(ctx)
		if err != nil {
			lgr.Printf("[WARN] bootstrap categories failed: %v", err)
			return nil
		}
		l.apply(store, Action{Type: ActCategoriesLoaded, Categories: categories})
		return nil
	})

	g.Go(func() error {
		location, _, err := l.api.Location(ctx)
		if err != nil {
			lgr.Printf("[WARN] bootstrap location failed: %v", err)
			return nil
		}
		l.apply(store, Action{Type: ActLocationLoaded, Location: location})
		return nil
	})

	_ = g.Wait() // goroutines never fail, errors are folded into state
	return store.State()
}

func (l *Loader) apply(store *Store, a Action) {
	if _, err := store.Apply(a); err != nil {
		lgr.Printf("[WARN] bootstrap can't apply %s: %v", a.Type, err)
	}
}
