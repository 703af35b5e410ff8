// Package auth drives the sign-in, registration, and email-verification flows.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/notify"
)

type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
	// EmailUnverified is entered when the backend refuses a login or finishes
	// a registration with an unverified address; the flow then expects a
	// 5-digit code.
	EmailUnverified
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case EmailUnverified:
		return "email_unverified"
	default:
		return "anonymous"
	}
}

// unverifiedMarker is the backend's message fragment that distinguishes an
// unverified account from a plain bad-credentials 401.
const unverifiedMarker = "verify your email"

// ErrValidation marks failures caught client-side before any network call.
var ErrValidation = errors.New("validation failed")

type authAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, data api.RegisterData) (*api.RegisterResponse, error)
	VerifyEmail(ctx context.Context, email, code string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, data api.ResetPasswordData) (string, error)
	ChangePassword(ctx context.Context, data api.ChangePasswordData) (string, error)
}

type sessionStore interface {
	Set(token string, user api.User) error
	Clear() error
}

type Flow struct {
	api      authAPI
	sessions sessionStore
	notify   notify.Notifier
	log      *slog.Logger

	state State
	// pendingEmail is the address awaiting verification while in
	// EmailUnverified.
	pendingEmail string
}

func NewFlow(a authAPI, sessions sessionStore, n notify.Notifier, logger *slog.Logger) *Flow {
	return &Flow{api: a, sessions: sessions, notify: n, log: logger, state: Anonymous}
}

func (f *Flow) State() State { return f.state }

// PendingEmail is the address a verification code was sent to, when in
// EmailUnverified.
func (f *Flow) PendingEmail() string { return f.pendingEmail }

// Login authenticates and stores the session. A 401 carrying the
// unverified-email marker switches to EmailUnverified and auto-resends the
// verification code instead of surfacing the raw error.
func (f *Flow) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		f.notify.Error("Please fill in all fields")
		return ErrValidation
	}

	f.state = Authenticating
	resp, err := f.api.Login(ctx, email, password)
	if err != nil {
		msg := api.ErrorMessage(err, "Login failed. Please check your credentials.")
		if strings.Contains(strings.ToLower(msg), unverifiedMarker) {
			f.enterVerification(ctx, email)
			return nil
		}
		f.state = Anonymous
		f.notify.Error(msg)
		return err
	}

	if err := f.sessions.Set(resp.AccessToken, resp.User); err != nil {
		f.state = Anonymous
		f.notify.Error("Login failed. Please check your credentials.")
		return fmt.Errorf("failed to store session: %w", err)
	}

	f.state = Authenticated
	f.notify.Success("Login successful!")
	return nil
}

func (f *Flow) enterVerification(ctx context.Context, email string) {
	f.notify.Info("Redirecting to verification...")
	if _, err := f.api.ResendVerification(ctx, email); err != nil {
		// The user can still request a new code manually.
		f.log.Error("failed to resend verification code", "error", err)
	} else {
		f.notify.Success("Verification code sent to your email")
	}
	f.state = EmailUnverified
	f.pendingEmail = email
}

// Verify submits the emailed code. The code must be exactly 5 digits; anything
// else is rejected before the network call. Success returns the flow to
// Anonymous, ready for a fresh login.
func (f *Flow) Verify(ctx context.Context, code string) error {
	if f.state != EmailUnverified {
		return fmt.Errorf("no verification in progress")
	}
	if !validCode(code) {
		f.notify.Error("Please enter a valid 5-digit verification code")
		return ErrValidation
	}

	msg, err := f.api.VerifyEmail(ctx, f.pendingEmail, code)
	if err != nil {
		f.notify.Error(api.ErrorMessage(err, "Verification failed. Please try again."))
		return err
	}

	f.notify.Success(msg)
	f.state = Anonymous
	f.pendingEmail = ""
	return nil
}

// ResendCode re-requests a verification code for the pending address.
func (f *Flow) ResendCode(ctx context.Context) error {
	if f.state != EmailUnverified {
		return fmt.Errorf("no verification in progress")
	}
	msg, err := f.api.ResendVerification(ctx, f.pendingEmail)
	if err != nil {
		f.notify.Error(api.ErrorMessage(err, "Failed to resend code. Please try again."))
		return err
	}
	f.notify.Success(msg)
	return nil
}

// Logout clears the session locally; no server round trip is needed.
func (f *Flow) Logout() error {
	if err := f.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	f.state = Anonymous
	f.pendingEmail = ""
	return nil
}

// Register creates an account and moves into the verification step. A 409
// means the address is already registered and gets its own message instead of
// the generic fallback.
func (f *Flow) Register(ctx context.Context, data api.RegisterData, confirmPassword string) error {
	if data.Email == "" || data.Password == "" || data.FirstName == "" || data.LastName == "" {
		f.notify.Error("Please fill in all required fields")
		return ErrValidation
	}
	if len(data.Password) < 6 {
		f.notify.Error("Password must be at least 6 characters")
		return ErrValidation
	}
	if data.Password != confirmPassword {
		f.notify.Error("Passwords do not match")
		return ErrValidation
	}

	resp, err := f.api.Register(ctx, data)
	if err != nil {
		if api.IsStatus(err, http.StatusConflict) {
			f.notify.Error("User with this email already exists. Please sign in instead.")
		} else {
			f.notify.Error(api.ErrorMessage(err, "Registration failed. Please try again."))
		}
		return err
	}

	f.notify.Success(resp.Message)
	f.state = EmailUnverified
	f.pendingEmail = data.Email
	return nil
}

// ForgotPassword requests a reset code for the address.
func (f *Flow) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		f.notify.Error("Please enter your email")
		return ErrValidation
	}
	msg, err := f.api.ForgotPassword(ctx, email)
	if err != nil {
		f.notify.Error(api.ErrorMessage(err, "Failed to send reset code. Please try again."))
		return err
	}
	f.notify.Success(msg)
	return nil
}

// ResetPassword redeems a reset code for a new password.
func (f *Flow) ResetPassword(ctx context.Context, data api.ResetPasswordData) error {
	if data.Email == "" || data.ResetCode == "" || data.NewPassword == "" {
		f.notify.Error("Please fill in all fields")
		return ErrValidation
	}
	if data.NewPassword != data.ConfirmPassword {
		f.notify.Error("Passwords do not match")
		return ErrValidation
	}
	msg, err := f.api.ResetPassword(ctx, data)
	if err != nil {
		f.notify.Error(api.ErrorMessage(err, "Failed to reset password. Please try again."))
		return err
	}
	f.notify.Success(msg)
	return nil
}

// ChangePassword updates the signed-in user's password.
func (f *Flow) ChangePassword(ctx context.Context, data api.ChangePasswordData) error {
	if data.OldPassword == "" || data.NewPassword == "" {
		f.notify.Error("Please fill in all fields")
		return ErrValidation
	}
	if data.NewPassword != data.ConfirmPassword {
		f.notify.Error("Passwords do not match")
		return ErrValidation
	}
	msg, err := f.api.ChangePassword(ctx, data)
	if err != nil {
		f.notify.Error(api.ErrorMessage(err, "Failed to change password. Please try again."))
		return err
	}
	f.notify.Success(msg)
	return nil
}

func validCode(code string) bool {
	if len(code) != 5 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
