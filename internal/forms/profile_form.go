package forms

import (
	"context"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/notify"
)

type profileAPI interface {
	Profile(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, fields map[string]any) (*api.User, error)
}

type ProfileFields struct {
	FirstName string
	LastName  string
	Phone     string
}

// ProfileForm edits the signed-in user's profile with the same baseline/diff
// contract as ListingForm.
type ProfileForm struct {
	api    profileAPI
	notify notify.Notifier

	current  ProfileFields
	baseline ProfileFields
}

// LoadProfileForm fetches the profile and seeds both field sets.
func LoadProfileForm(ctx context.Context, a profileAPI, n notify.Notifier) (*ProfileForm, error) {
	user, err := a.Profile(ctx)
	if err != nil {
		n.Error(api.ErrorMessage(err, "Failed to load profile"))
		return nil, err
	}
	fields := ProfileFields{FirstName: user.FirstName, LastName: user.LastName, Phone: user.Phone}
	return &ProfileForm{api: a, notify: n, current: fields, baseline: fields}, nil
}

func (f *ProfileForm) Fields() ProfileFields    { return f.current }
func (f *ProfileForm) Set(fields ProfileFields) { f.current = fields }
func (f *ProfileForm) HasChanges() bool         { return f.current != f.baseline }
func (f *ProfileForm) Reset()                   { f.current = f.baseline }

// Save patches only the changed fields. With no changes it makes no network
// call and reports "No changes to save".
func (f *ProfileForm) Save(ctx context.Context) (*api.User, error) {
	if !f.HasChanges() {
		f.notify.Info("No changes to save")
		return nil, nil
	}

	fields := map[string]any{}
	if f.current.FirstName != f.baseline.FirstName {
		fields["firstName"] = f.current.FirstName
	}
	if f.current.LastName != f.baseline.LastName {
		fields["lastName"] = f.current.LastName
	}
	if f.current.Phone != f.baseline.Phone {
		fields["phone"] = f.current.Phone
	}

	updated, err := f.api.UpdateProfile(ctx, fields)
	if err != nil {
		f.notify.Error(api.ErrorMessage(err, "Failed to update profile"))
		return nil, err
	}

	f.baseline = ProfileFields{FirstName: updated.FirstName, LastName: updated.LastName, Phone: updated.Phone}
	f.current = f.baseline
	f.notify.Success("Profile updated successfully!")
	return updated, nil
}
