package forms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/notify"
)

type fakeProfileAPI struct {
	user       *api.User
	updateErr  error
	lastUpdate map[string]any
	updates    int
}

func (f *fakeProfileAPI) Profile(_ context.Context) (*api.User, error) {
	return f.user, nil
}

func (f *fakeProfileAPI) UpdateProfile(_ context.Context, fields map[string]any) (*api.User, error) {
	f.updates++
	f.lastUpdate = fields
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	updated := *f.user
	if v, ok := fields["firstName"]; ok {
		updated.FirstName = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		updated.Phone = v.(string)
	}
	return &updated, nil
}

func TestProfileSaveDiffOnly(t *testing.T) {
	backend := &fakeProfileAPI{user: &api.User{FirstName: "Ana", LastName: "B", Phone: "123"}}
	rec := &notify.Recorder{}
	form, err := LoadProfileForm(context.Background(), backend, rec)
	require.NoError(t, err)

	fields := form.Fields()
	fields.Phone = "456"
	form.Set(fields)

	_, err = form.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"phone": "456"}, backend.lastUpdate)
	assert.False(t, form.HasChanges())
}

func TestProfileSaveNoChanges(t *testing.T) {
	backend := &fakeProfileAPI{user: &api.User{FirstName: "Ana"}}
	rec := &notify.Recorder{}
	form, err := LoadProfileForm(context.Background(), backend, rec)
	require.NoError(t, err)

	user, err := form.Save(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Zero(t, backend.updates)
	assert.Contains(t, rec.Infos, "No changes to save")
}

func TestProfileSaveFailureKeepsInput(t *testing.T) {
	backend := &fakeProfileAPI{
		user:      &api.User{FirstName: "Ana"},
		updateErr: &api.Error{Status: 500, Message: "down"},
	}
	rec := &notify.Recorder{}
	form, err := LoadProfileForm(context.Background(), backend, rec)
	require.NoError(t, err)

	fields := form.Fields()
	fields.FirstName = "Maja"
	form.Set(fields)

	_, err = form.Save(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Maja", form.Fields().FirstName)
	assert.Contains(t, rec.Errors, "down")
}
