// Package forms implements the create/update form controllers: a baseline of
// last-saved values, an editable current set, fail-fast validation, and
// minimal-diff PATCH submission.
package forms

import (
	"context"
	"errors"
	"fmt"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/notify"
)

// ErrValidation marks submissions rejected before any network call.
var ErrValidation = errors.New("validation failed")

type listingFormAPI interface {
	Listing(ctx context.Context, id string) (*api.Listing, error)
	CreateListing(ctx context.Context, input api.CreateListingInput) (*api.Listing, error)
	UpdateListing(ctx context.Context, id string, fields map[string]any) (*api.Listing, error)
}

// ListingFields are the user-editable listing fields.
type ListingFields struct {
	Title       string
	Description string
	Price       float64
	Condition   api.ListingCondition
	CategoryID  string
	Location    string
}

// ListingForm tracks current against baseline. An empty id means create mode.
type ListingForm struct {
	api    listingFormAPI
	notify notify.Notifier

	id       string
	current  ListingFields
	baseline ListingFields
	// onSaved is the post-submit navigation callback.
	onSaved func(*api.Listing)
}

// NewListingForm starts an empty create-mode form.
func NewListingForm(a listingFormAPI, n notify.Notifier, onSaved func(*api.Listing)) *ListingForm {
	if onSaved == nil {
		onSaved = func(*api.Listing) {}
	}
	return &ListingForm{api: a, notify: n, onSaved: onSaved}
}

// EditListingForm loads an existing listing into both field sets.
func EditListingForm(ctx context.Context, a listingFormAPI, n notify.Notifier, id string, onSaved func(*api.Listing)) (*ListingForm, error) {
	f := NewListingForm(a, n, onSaved)
	listing, err := a.Listing(ctx, id)
	if err != nil {
		n.Error(api.ErrorMessage(err, "Failed to load listing"))
		return nil, err
	}
	f.id = id
	f.baseline = fieldsFromListing(listing)
	f.current = f.baseline
	return f, nil
}

func fieldsFromListing(l *api.Listing) ListingFields {
	return ListingFields{
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Condition:   l.Condition,
		CategoryID:  l.CategoryID,
		Location:    l.Location,
	}
}

func (f *ListingForm) Fields() ListingFields { return f.current }

// Set replaces the editable field set.
func (f *ListingForm) Set(fields ListingFields) { f.current = fields }

// HasChanges is a field-wise inequality between current and baseline.
func (f *ListingForm) HasChanges() bool { return f.current != f.baseline }

// Reset discards unsaved edits.
func (f *ListingForm) Reset() { f.current = f.baseline }

func (f *ListingForm) valid() bool {
	return f.current.Title != "" && f.current.Description != "" && f.current.Price > 0
}

// SubmitCreate sends the full field set, optional fields only when non-empty.
// Invalid input is rejected locally with no network call.
func (f *ListingForm) SubmitCreate(ctx context.Context) (*api.Listing, error) {
	if !f.valid() {
		f.notify.Error("Please fill in all required fields")
		return nil, ErrValidation
	}

	input := api.CreateListingInput{
		Title:       f.current.Title,
		Description: f.current.Description,
		Price:       f.current.Price,
		Condition:   f.current.Condition,
		CategoryID:  f.current.CategoryID,
		Location:    f.current.Location,
	}

	created, err := f.api.CreateListing(ctx, input)
	if err != nil {
		f.notify.Error(api.ErrorMessage(err, "Failed to create listing"))
		return nil, err
	}

	f.id = created.ID
	f.baseline = fieldsFromListing(created)
	f.current = f.baseline
	f.notify.Success("Listing created successfully! You can now upload images.")
	f.onSaved(created)
	return created, nil
}

// SubmitUpdate sends exactly the fields where current differs from baseline.
// With no changes it makes no network call. On success the server response
// becomes the new baseline; on failure current keeps the user's input.
func (f *ListingForm) SubmitUpdate(ctx context.Context) (*api.Listing, error) {
	if f.id == "" {
		return nil, fmt.Errorf("form has no listing to update")
	}
	if !f.HasChanges() {
		f.notify.Info("No changes to save")
		return nil, nil
	}
	if !f.valid() {
		f.notify.Error("Please fill in all required fields")
		return nil, ErrValidation
	}

	updated, err := f.api.UpdateListing(ctx, f.id, f.diff())
	if err != nil {
		f.notify.Error(api.ErrorMessage(err, "Failed to update listing"))
		return nil, err
	}

	// The server normalizes; its response is authoritative.
	f.baseline = fieldsFromListing(updated)
	f.current = f.baseline
	f.notify.Success("Listing updated successfully!")
	f.onSaved(updated)
	return updated, nil
}

func (f *ListingForm) diff() map[string]any {
	fields := map[string]any{}
	if f.current.Title != f.baseline.Title {
		fields["title"] = f.current.Title
	}
	if f.current.Description != f.baseline.Description {
		fields["description"] = f.current.Description
	}
	if f.current.Price != f.baseline.Price {
		fields["price"] = f.current.Price
	}
	if f.current.Condition != f.baseline.Condition {
		fields["condition"] = f.current.Condition
	}
	if f.current.CategoryID != f.baseline.CategoryID {
		fields["categoryId"] = f.current.CategoryID
	}
	if f.current.Location != f.baseline.Location {
		fields["location"] = f.current.Location
	}
	return fields
}
