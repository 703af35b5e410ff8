// Package listings drives the listing browse pages: load, filter and search
// composition, optimistic delete, and ownership annotation.
package listings

import (
	"context"
	"log/slog"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/notify"
)

type listingAPI interface {
	Listings(ctx context.Context, filters api.ListingFilters) ([]api.Listing, error)
	MyListingIDs(ctx context.Context) ([]string, error)
	DeleteListing(ctx context.Context, id string) error
}

// Scope fixes the axis a page cannot change: the home page browses active
// listings, the my-listings page browses the session user's.
type Scope struct {
	Status string
	UserID string
}

// AllActive is the home page scope.
func AllActive() Scope { return Scope{Status: string(api.StatusActive)} }

// OwnedBy is the my-listings scope.
func OwnedBy(userID string) Scope { return Scope{UserID: userID} }

// Controller holds a read-only, refreshable cache of listings plus an
// independently fetched set of owned ids used only for UI affordances.
type Controller struct {
	api    listingAPI
	notify notify.Notifier
	log    *slog.Logger

	scope   Scope
	filters api.ListingFilters
	search  string

	cache  []api.Listing
	loaded bool
	owned  map[string]struct{}
}

func NewController(a listingAPI, n notify.Notifier, logger *slog.Logger, scope Scope) *Controller {
	return &Controller{
		api:    a,
		notify: n,
		log:    logger,
		scope:  scope,
		owned:  map[string]struct{}{},
	}
}

// Criteria composes the scope, filter, and search axes with logical AND.
// Applying the same state twice yields identical request parameters.
func (c *Controller) Criteria() api.ListingFilters {
	criteria := c.filters
	criteria.Search = c.search
	if c.scope.Status != "" {
		criteria.Status = c.scope.Status
	}
	if c.scope.UserID != "" {
		criteria.UserID = c.scope.UserID
	}
	return criteria
}

// Load issues one list call and replaces the cache wholesale. On failure the
// prior cache stays intact (stale but available) and the error is surfaced as
// a notification.
func (c *Controller) Load(ctx context.Context) error {
	result, err := c.api.Listings(ctx, c.Criteria())
	if err != nil {
		c.notify.Error(api.ErrorMessage(err, "Failed to load listings"))
		return err
	}
	c.cache = result
	c.loaded = true
	return nil
}

// ApplyFilter replaces the filter axis and reloads; the search axis is kept.
func (c *Controller) ApplyFilter(ctx context.Context, filters api.ListingFilters) error {
	c.filters = filters
	return c.Load(ctx)
}

// ApplySearch replaces the search term and reloads; the filter axis is kept.
func (c *Controller) ApplySearch(ctx context.Context, term string) error {
	c.search = term
	return c.Load(ctx)
}

// Remove deletes on the backend first, then removes the listing from the
// cache. A failed delete mutates nothing.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.api.DeleteListing(ctx, id); err != nil {
		c.notify.Error(api.ErrorMessage(err, "Failed to delete listing"))
		return err
	}

	kept := c.cache[:0]
	for _, l := range c.cache {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	c.cache = kept
	delete(c.owned, id)
	c.notify.Success("Listing deleted successfully!")
	return nil
}

// RefreshOwnership fetches the session user's listing ids. The fetch is
// independent of Load and may lag it; failure only logs since the list itself
// still renders.
func (c *Controller) RefreshOwnership(ctx context.Context) error {
	ids, err := c.api.MyListingIDs(ctx)
	if err != nil {
		c.log.Error("failed to fetch owned listing ids", "error", err)
		return err
	}
	owned := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		owned[id] = struct{}{}
	}
	c.owned = owned
	return nil
}

// Owns reports whether the cached listing id belongs to the session user.
func (c *Controller) Owns(id string) bool {
	_, ok := c.owned[id]
	return ok
}

// Listings returns the cached result of the last successful Load.
func (c *Controller) Listings() []api.Listing { return c.cache }

// Loaded distinguishes an empty result set from a list that was never loaded.
func (c *Controller) Loaded() bool { return c.loaded }

// Empty reports a loaded, genuinely empty result set.
func (c *Controller) Empty() bool { return c.loaded && len(c.cache) == 0 }
