package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsnearme/pkg/domain"
)

// Request is a user-triggered service call
type Request struct {
	Service domain.ServiceID
	City    string // custom search only
	Country string // custom search only
}

// Dispatcher performs service calls and stores their results
type Dispatcher struct {
	api API
}

// NewDispatcher makes a dispatcher
func NewDispatcher(api API) *Dispatcher {
	return &Dispatcher{api: api}
}

// Search runs the news search for the current limit and category.
// It is the same path as the news-auto service.
func (d *Dispatcher) Search(ctx context.Context, store *Store) (State, error) {
	return d.Dispatch(ctx, store, Request{Service: domain.ServiceNewsAuto})
}

// Dispatch performs exactly one call for the requested service and stores the parsed answer as
// the current response. A failed call stores an error response and keeps location and categories.
// Concurrent calls are allowed, the pending counter tracks all of them.
func (d *Dispatcher) Dispatch(ctx context.Context, store *Store, req Request) (State, error) {
	if _, ok := domain.LookupService(req.Service); !ok {
		return store.State(), fmt.Errorf("%w: %q", ErrUnknownService, req.Service)
	}

	st := store.State()
	query := domain.NewsQuery{Limit: st.Limit, Category: st.Category,
		City: strings.TrimSpace(req.City), Country: strings.TrimSpace(req.Country)}

	// custom search without a place falls back to the detected location, if any.
	// The request is sent either way and the backend decides whether the place is required.
	if req.Service == domain.ServiceNewsCustom && query.City == "" && query.Country == "" && st.Location != nil {
		query.City, query.Country = st.Location.City, st.Location.Country
	}

	if _, err := store.Apply(Action{Type: ActRequestStarted, Service: req.Service}); err != nil {
		return store.State(), err
	}

	results := d.call(ctx, req.Service, query)
	res, err := store.Apply(append(results, Action{Type: ActRequestFinished})...)
	if err != nil {
		// results are produced by the dispatcher itself, make sure pending is released anyway
		lgr.Printf("[WARN] can't store %s result: %v", req.Service, err)
		return store.Apply(Action{Type: ActRequestFinished})
	}
	return res, nil
}

// call performs the backend request and returns actions describing its outcome
func (d *Dispatcher) call(ctx context.Context, id domain.ServiceID, q domain.NewsQuery) []Action {
	failed := func(err error) []Action {
		lgr.Printf("[WARN] service %s failed: %v", id, err)
		return []Action{{Type: ActResponseSet, Response: domain.ErrResponse(id, err)}}
	}

	switch id {
	case domain.ServiceNewsAuto, domain.ServiceNewsCustom:
		search := d.api.Search
		if id == domain.ServiceNewsCustom {
			search = d.api.SearchCustom
		}
		news, raw, err := search(ctx, q)
		if err != nil {
			return failed(err)
		}
		lgr.Printf("[DEBUG] service %s returned %d news", id, len(news))
		return []Action{
			{Type: ActNewsLoaded, News: news},
			{Type: ActResponseSet, Response: domain.OkResponse(id, raw)},
		}

	case domain.ServiceLocation:
		loc, raw, err := d.api.Location(ctx)
		if err != nil {
			return failed(err)
		}
		return []Action{
			{Type: ActLocationLoaded, Location: loc},
			{Type: ActResponseSet, Response: domain.OkResponse(id, raw)},
		}

	case domain.ServiceCategories:
		categories, raw, err := d.api.Categories(ctx)
		if err != nil {
			return failed(err)
		}
		return []Action{
			{Type: ActCategoriesLoaded, Categories: categories},
			{Type: ActResponseSet, Response: domain.OkResponse(id, raw)},
		}

	case domain.ServiceHealth:
		status, raw, err := d.api.Health(ctx)
		if err != nil {
			return append(failed(err), Action{Type: ActHealthSet, Health: domain.HealthOffline})
		}
		health := domain.HealthOffline
		if status.IsHealthy() {
			health = domain.HealthOnline
		}
		return []Action{
			{Type: ActHealthSet, Health: health},
			{Type: ActResponseSet, Response: domain.OkResponse(id, raw)},
		}
	}

	return failed(fmt.Errorf("%w: %q", ErrUnknownService, id))
}
