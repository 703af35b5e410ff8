package listings

import (
	"context"
	"sync"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
)

type detailAPI interface {
	Listing(ctx context.Context, id string) (*api.Listing, error)
}

// DetailFetcher issues at most one detail fetch per listing id, no matter how
// often a view asks again. The backend counts views on this endpoint, so
// re-renders must not refetch. Invalidate drops the latch for an id.
type DetailFetcher struct {
	api detailAPI

	mu      sync.Mutex
	results map[string]*detailResult
}

type detailResult struct {
	listing *api.Listing
	err     error
}

func NewDetailFetcher(a detailAPI) *DetailFetcher {
	return &DetailFetcher{api: a, results: map[string]*detailResult{}}
}

// Get returns the listing for id, fetching only on the first call per id.
// Later calls replay the first outcome, including a failure.
func (f *DetailFetcher) Get(ctx context.Context, id string) (*api.Listing, error) {
	f.mu.Lock()
	if r, ok := f.results[id]; ok {
		f.mu.Unlock()
		return r.listing, r.err
	}
	// Latch before the fetch so a re-entrant call cannot double-issue.
	r := &detailResult{}
	f.results[id] = r
	f.mu.Unlock()

	r.listing, r.err = f.api.Listing(ctx, id)
	return r.listing, r.err
}

// Invalidate forgets the cached outcome for id so the next Get refetches.
func (f *DetailFetcher) Invalidate(id string) {
	f.mu.Lock()
	delete(f.results, id)
	f.mu.Unlock()
}
