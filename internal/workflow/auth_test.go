package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type fakeAuthenticator struct {
	loginCalls  []models.LoginRequest
	signupCalls []models.SignupRequest

	profile *models.AuthProfile
	err     error
}

func (f *fakeAuthenticator) Login(_ context.Context, req models.LoginRequest) (*models.AuthProfile, error) {
	f.loginCalls = append(f.loginCalls, req)
	return f.profile, f.err
}

func (f *fakeAuthenticator) Signup(_ context.Context, req models.SignupRequest) (*models.AuthProfile, error) {
	f.signupCalls = append(f.signupCalls, req)
	return f.profile, f.err
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestLoginBackendRejection(t *testing.T) {
	auth := &fakeAuthenticator{err: &models.BackendError{StatusCode: 401, Message: "invalid credentials"}}
	form := NewLoginForm(auth, clock)
	form.SetCredentials(Credentials{Email: "a@b.com", Password: "x"})

	err := form.Submit(context.Background())

	require.Error(t, err)
	state := form.State()
	assert.Equal(t, "invalid credentials", state.StatusMessage)
	assert.Nil(t, state.User)
	require.Len(t, auth.loginCalls, 1)
	assert.Equal(t, models.LoginRequest{Username: "a@b.com", Password: "x"}, auth.loginCalls[0])
}

func TestLoginFallbackMessage(t *testing.T) {
	auth := &fakeAuthenticator{err: errors.New("dial tcp: connection refused")}
	form := NewLoginForm(auth, clock)
	form.SetCredentials(Credentials{Email: "a@b.com", Password: "x"})

	require.Error(t, form.Submit(context.Background()))
	assert.Equal(t, "Login failed", form.State().StatusMessage)
}

func TestLoginSuccess(t *testing.T) {
	auth := &fakeAuthenticator{profile: &models.AuthProfile{
		Username:    "jane",
		UploadCount: 4,
		Skills:      []string{"Go"},
	}}
	form := NewLoginForm(auth, clock)
	form.SetCredentials(Credentials{Email: "jane@example.com", Password: "secret"})

	require.NoError(t, form.Submit(context.Background()))

	state := form.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "jane", state.User.DisplayName)
	assert.Equal(t, "jane@example.com", state.User.Email)
	assert.Equal(t, 4, state.User.UploadCount)
	assert.Equal(t, []string{"Go"}, state.User.Skills)
	assert.Equal(t, fixedNow, state.User.LoginTimestamp)
	assert.Equal(t, "Login successful!", state.StatusMessage)
}

func TestLoginDisplayNameFallsBackToEmail(t *testing.T) {
	form := NewLoginForm(&fakeAuthenticator{profile: &models.AuthProfile{}}, clock)
	form.SetCredentials(Credentials{Email: "jane@example.com", Password: "secret"})

	require.NoError(t, form.Submit(context.Background()))
	assert.Equal(t, "jane@example.com", form.State().User.DisplayName)
}

func TestSignupDisplayNameFallsBackToUsername(t *testing.T) {
	auth := &fakeAuthenticator{profile: &models.AuthProfile{}}
	form := NewSignupForm(auth, clock)
	form.SetCredentials(Credentials{Username: "jdoe", Email: "jane@example.com", Password: "secret"})

	require.NoError(t, form.Submit(context.Background()))

	state := form.State()
	assert.Equal(t, "jdoe", state.User.DisplayName)
	assert.Equal(t, "Signup successful!", state.StatusMessage)
	require.Len(t, auth.signupCalls, 1)
	assert.Equal(t, models.SignupRequest{Username: "jdoe", Email: "jane@example.com", Password: "secret"}, auth.signupCalls[0])
}

func TestSignupFailureKeepsUserAbsent(t *testing.T) {
	auth := &fakeAuthenticator{err: &models.BackendError{StatusCode: 409, Message: "Email or Username exists"}}
	form := NewSignupForm(auth, clock)
	form.SetCredentials(Credentials{Username: "jdoe", Email: "jane@example.com", Password: "secret"})

	require.Error(t, form.Submit(context.Background()))
	state := form.State()
	assert.Nil(t, state.User)
	assert.Equal(t, "Email or Username exists", state.StatusMessage)
}

func TestValidationFailureMakesNoRequest(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		creds Credentials
		want  string
	}{
		{name: "login missing password", mode: ModeLogin, creds: Credentials{Email: "a@b.com"}, want: RequiredFieldsMessage},
		{name: "login bad email", mode: ModeLogin, creds: Credentials{Email: "not-an-email", Password: "x"}, want: InvalidEmailMessage},
		{name: "signup missing username", mode: ModeSignup, creds: Credentials{Email: "a@b.com", Password: "x"}, want: RequiredFieldsMessage},
		{name: "signup bad email", mode: ModeSignup, creds: Credentials{Username: "u", Email: "nope", Password: "x"}, want: InvalidEmailMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthenticator{profile: &models.AuthProfile{}}
			form := newAuthForm(tt.mode, auth, clock)
			form.SetCredentials(tt.creds)

			require.Error(t, form.Submit(context.Background()))
			assert.Equal(t, tt.want, form.State().StatusMessage)
			assert.Empty(t, auth.loginCalls)
			assert.Empty(t, auth.signupCalls)
		})
	}
}

func TestLogoutRestoresPristineState(t *testing.T) {
	for _, mode := range []Mode{ModeLogin, ModeSignup} {
		t.Run(string(mode), func(t *testing.T) {
			form := newAuthForm(mode, &fakeAuthenticator{profile: &models.AuthProfile{Username: "jane"}}, clock)
			form.SetCredentials(Credentials{Username: "jane", Email: "jane@example.com", Password: "secret"})
			require.NoError(t, form.Submit(context.Background()))
			require.NotNil(t, form.State().User)

			form.Logout()

			assert.Equal(t, AuthState{}, form.State())
		})
	}
}

func TestSubmitWhileAuthenticated(t *testing.T) {
	auth := &fakeAuthenticator{profile: &models.AuthProfile{}}
	form := NewLoginForm(auth, clock)
	form.SetCredentials(Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, form.Submit(context.Background()))

	assert.ErrorIs(t, form.Submit(context.Background()), ErrAlreadyAuthenticated)
	assert.Len(t, auth.loginCalls, 1)
}

func TestSetCredentialsIgnoredWhileAuthenticated(t *testing.T) {
	auth := &fakeAuthenticator{profile: &models.AuthProfile{}}
	form := NewLoginForm(auth, clock)
	form.SetCredentials(Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, form.Submit(context.Background()))

	form.SetCredentials(Credentials{Email: "other@b.com", Password: "y"})

	state := form.State()
	assert.Equal(t, "a@b.com", state.Credentials.Email)
	assert.Equal(t, "x", state.Credentials.Password)
	require.NotNil(t, state.User)
	assert.Equal(t, "a@b.com", state.User.Email)
}
