package auth

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/notify"
)

type fakeAuthAPI struct {
	loginResp   *api.LoginResponse
	loginErr    error
	registerErr error
	verifyErr   error
	resendCalls []string
	verifyCalls [][2]string
}

func (f *fakeAuthAPI) Login(_ context.Context, email, password string) (*api.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAuthAPI) Register(_ context.Context, data api.RegisterData) (*api.RegisterResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &api.RegisterResponse{Message: "Registered. Check your email."}, nil
}

func (f *fakeAuthAPI) VerifyEmail(_ context.Context, email, code string) (string, error) {
	f.verifyCalls = append(f.verifyCalls, [2]string{email, code})
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return "Email verified", nil
}

func (f *fakeAuthAPI) ResendVerification(_ context.Context, email string) (string, error) {
	f.resendCalls = append(f.resendCalls, email)
	return "Code sent", nil
}

func (f *fakeAuthAPI) ForgotPassword(_ context.Context, email string) (string, error) {
	return "Reset code sent", nil
}

func (f *fakeAuthAPI) ResetPassword(_ context.Context, data api.ResetPasswordData) (string, error) {
	return "Password reset", nil
}

func (f *fakeAuthAPI) ChangePassword(_ context.Context, data api.ChangePasswordData) (string, error) {
	return "Password changed", nil
}

type fakeSessions struct {
	token   string
	user    api.User
	cleared bool
}

func (f *fakeSessions) Set(token string, user api.User) error {
	f.token, f.user = token, user
	return nil
}

func (f *fakeSessions) Clear() error {
	f.token = ""
	f.cleared = true
	return nil
}

func newTestFlow(a *fakeAuthAPI) (*Flow, *fakeSessions, *notify.Recorder) {
	sessions := &fakeSessions{}
	rec := &notify.Recorder{}
	return NewFlow(a, sessions, rec, slog.Default()), sessions, rec
}

func TestLoginSuccess(t *testing.T) {
	user := api.User{ID: gofakeit.UUID(), Email: gofakeit.Email()}
	flow, sessions, rec := newTestFlow(&fakeAuthAPI{
		loginResp: &api.LoginResponse{AccessToken: "tok-1", User: user},
	})

	require.NoError(t, flow.Login(context.Background(), user.Email, "secret"))

	assert.Equal(t, Authenticated, flow.State())
	assert.Equal(t, "tok-1", sessions.token)
	assert.Equal(t, user.ID, sessions.user.ID)
	assert.Contains(t, rec.Successes, "Login successful!")
}

func TestLoginEmptyFieldsFailFast(t *testing.T) {
	backend := &fakeAuthAPI{}
	flow, _, rec := newTestFlow(backend)

	err := flow.Login(context.Background(), "a@b.com", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, Anonymous, flow.State())
	assert.Contains(t, rec.Errors, "Please fill in all fields")
}

func TestLoginUnverifiedEmailEntersVerification(t *testing.T) {
	backend := &fakeAuthAPI{
		loginErr: &api.Error{Status: http.StatusUnauthorized, Message: "Please verify your email before logging in"},
	}
	flow, sessions, rec := newTestFlow(backend)

	err := flow.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	assert.Equal(t, EmailUnverified, flow.State())
	assert.Equal(t, "a@b.com", flow.PendingEmail())
	// A resend fires automatically on entry.
	assert.Equal(t, []string{"a@b.com"}, backend.resendCalls)
	// The raw 401 message never reaches the user.
	assert.Empty(t, rec.Errors)
	assert.Empty(t, sessions.token)
}

func TestLoginBadCredentials(t *testing.T) {
	backend := &fakeAuthAPI{
		loginErr: &api.Error{Status: http.StatusUnauthorized, Message: "Invalid credentials"},
	}
	flow, _, rec := newTestFlow(backend)

	err := flow.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, Anonymous, flow.State())
	assert.Contains(t, rec.Errors, "Invalid credentials")
}

func TestLoginTransportErrorUsesFallbackMessage(t *testing.T) {
	backend := &fakeAuthAPI{loginErr: assert.AnError}
	flow, _, rec := newTestFlow(backend)

	require.Error(t, flow.Login(context.Background(), "a@b.com", "x"))
	assert.Contains(t, rec.Errors, "Login failed. Please check your credentials.")
}

func TestVerifyCodeGate(t *testing.T) {
	backend := &fakeAuthAPI{
		loginErr: &api.Error{Status: http.StatusUnauthorized, Message: "please verify your email"},
	}
	flow, _, rec := newTestFlow(backend)
	require.NoError(t, flow.Login(context.Background(), "a@b.com", "x"))

	for _, code := range []string{"", "1234", "123456", "12a45"} {
		err := flow.Verify(context.Background(), code)
		assert.ErrorIs(t, err, ErrValidation, "code %q", code)
	}
	// None of the rejected codes reached the backend.
	assert.Empty(t, backend.verifyCalls)
	assert.Contains(t, rec.Errors, "Please enter a valid 5-digit verification code")

	require.NoError(t, flow.Verify(context.Background(), "12345"))
	assert.Equal(t, Anonymous, flow.State())
	assert.Empty(t, flow.PendingEmail())
	assert.Equal(t, [2]string{"a@b.com", "12345"}, backend.verifyCalls[0])
}

func TestVerifyOutsideVerificationState(t *testing.T) {
	flow, _, _ := newTestFlow(&fakeAuthAPI{})
	assert.Error(t, flow.Verify(context.Background(), "12345"))
}

func TestLogout(t *testing.T) {
	user := api.User{ID: "u1"}
	flow, sessions, _ := newTestFlow(&fakeAuthAPI{
		loginResp: &api.LoginResponse{AccessToken: "tok", User: user},
	})
	require.NoError(t, flow.Login(context.Background(), "a@b.com", "x"))

	require.NoError(t, flow.Logout())
	assert.Equal(t, Anonymous, flow.State())
	assert.True(t, sessions.cleared)
}

func TestRegisterValidation(t *testing.T) {
	backend := &fakeAuthAPI{}
	flow, _, rec := newTestFlow(backend)
	ctx := context.Background()

	base := api.RegisterData{
		Email:     gofakeit.Email(),
		Password:  "secret1",
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}

	missing := base
	missing.FirstName = ""
	assert.ErrorIs(t, flow.Register(ctx, missing, missing.Password), ErrValidation)

	short := base
	short.Password = "abc"
	assert.ErrorIs(t, flow.Register(ctx, short, "abc"), ErrValidation)
	assert.Contains(t, rec.Errors, "Password must be at least 6 characters")

	assert.ErrorIs(t, flow.Register(ctx, base, "different"), ErrValidation)
	assert.Contains(t, rec.Errors, "Passwords do not match")
}

func TestRegisterSuccessEntersVerification(t *testing.T) {
	flow, _, rec := newTestFlow(&fakeAuthAPI{})
	data := api.RegisterData{
		Email:     "new@b.com",
		Password:  "secret1",
		FirstName: "Ana",
		LastName:  "B",
	}

	require.NoError(t, flow.Register(context.Background(), data, "secret1"))
	assert.Equal(t, EmailUnverified, flow.State())
	assert.Equal(t, "new@b.com", flow.PendingEmail())
	assert.Contains(t, rec.Successes, "Registered. Check your email.")
}

func TestRegisterConflict(t *testing.T) {
	backend := &fakeAuthAPI{
		registerErr: &api.Error{Status: http.StatusConflict, Message: "duplicate"},
	}
	flow, _, rec := newTestFlow(backend)
	data := api.RegisterData{Email: "a@b.com", Password: "secret1", FirstName: "A", LastName: "B"}

	require.Error(t, flow.Register(context.Background(), data, "secret1"))
	assert.Contains(t, rec.Errors, "User with this email already exists. Please sign in instead.")
}

func TestResetPasswordMismatch(t *testing.T) {
	flow, _, rec := newTestFlow(&fakeAuthAPI{})
	err := flow.ResetPassword(context.Background(), api.ResetPasswordData{
		Email:           "a@b.com",
		ResetCode:       "11111",
		NewPassword:     "secret1",
		ConfirmPassword: "secret2",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, rec.Errors, "Passwords do not match")
}
