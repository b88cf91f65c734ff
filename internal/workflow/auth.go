package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

const (
	RequiredFieldsMessage = "Please fill in all required fields."
	InvalidEmailMessage   = "Please enter a valid email address."
)

var ErrAlreadyAuthenticated = errors.New("already authenticated")

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthProfile, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthProfile, error)
}

// Credentials are the raw form inputs. Login uses Email as the identifier
// and ignores Username.
type Credentials struct {
	Username string
	Email    string
	Password string
}

type AuthenticatedUser struct {
	DisplayName    string
	Email          string
	UploadCount    int
	Skills         []string
	LoginTimestamp time.Time
}

type AuthState struct {
	Credentials   Credentials
	User          *AuthenticatedUser
	StatusMessage string
	IsSubmitting  bool
}

// AuthForm is the shared shape of the login and signup pages.
type AuthForm struct {
	mode Mode
	auth Authenticator
	now  func() time.Time

	mu    sync.Mutex
	state AuthState
}

func NewLoginForm(auth Authenticator, now func() time.Time) *AuthForm {
	return newAuthForm(ModeLogin, auth, now)
}

func NewSignupForm(auth Authenticator, now func() time.Time) *AuthForm {
	return newAuthForm(ModeSignup, auth, now)
}

func newAuthForm(mode Mode, auth Authenticator, now func() time.Time) *AuthForm {
	if now == nil {
		now = time.Now
	}
	return &AuthForm{
		mode: mode,
		auth: auth,
		now:  now,
	}
}

func (f *AuthForm) Mode() Mode {
	return f.mode
}

// SetCredentials stores the form inputs. It is a no-op while a request is
// in flight or a user is signed in.
func (f *AuthForm) SetCredentials(c Credentials) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.IsSubmitting || f.state.User != nil {
		return
	}
	f.state.Credentials = Credentials{
		Username: strings.TrimSpace(c.Username),
		Email:    strings.TrimSpace(c.Email),
		Password: c.Password,
	}
}

// Submit validates the entered credentials and issues exactly one request
// to the matching auth endpoint.
func (f *AuthForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.IsSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInProgress
	}
	if f.state.User != nil {
		f.mu.Unlock()
		return ErrAlreadyAuthenticated
	}

	creds := f.state.Credentials
	if err := f.validateCredentials(creds); err != nil {
		f.state.StatusMessage = validationMessage(err)
		f.mu.Unlock()
		return err
	}

	f.state.IsSubmitting = true
	f.state.StatusMessage = ""
	f.mu.Unlock()

	var (
		profile *models.AuthProfile
		err     error
	)
	defer func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.state.IsSubmitting = false
		if err != nil {
			f.state.User = nil
			f.state.StatusMessage = f.failureMessage(err)
			return
		}
		f.state.User = f.authenticatedUser(creds, profile)
		f.state.StatusMessage = f.successMessage()
	}()

	profile, err = f.call(ctx, creds)
	if err != nil {
		return fmt.Errorf("%s failed: %w", f.mode, err)
	}

	return nil
}

// Logout restores the pristine form. No server call is made.
func (f *AuthForm) Logout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = AuthState{}
}

func (f *AuthForm) State() AuthState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *AuthForm) validateCredentials(c Credentials) error {
	if f.mode == ModeLogin {
		return validate.Struct(loginRequest(c))
	}
	return validate.Struct(signupRequest(c))
}

func (f *AuthForm) call(ctx context.Context, c Credentials) (*models.AuthProfile, error) {
	if f.mode == ModeLogin {
		return f.auth.Login(ctx, loginRequest(c))
	}
	return f.auth.Signup(ctx, signupRequest(c))
}

func (f *AuthForm) authenticatedUser(c Credentials, profile *models.AuthProfile) *AuthenticatedUser {
	user := &AuthenticatedUser{
		Email:          c.Email,
		LoginTimestamp: f.now(),
	}

	if profile != nil {
		user.DisplayName = profile.Username
		user.UploadCount = profile.UploadCount
		user.Skills = profile.Skills
	}
	if user.DisplayName == "" {
		user.DisplayName = c.Username
	}
	if user.DisplayName == "" {
		user.DisplayName = c.Email
	}

	return user
}

func (f *AuthForm) successMessage() string {
	if f.mode == ModeLogin {
		return "Login successful!"
	}
	return "Signup successful!"
}

func (f *AuthForm) failureMessage(err error) string {
	var backendErr *models.BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}
	if f.mode == ModeLogin {
		return "Login failed"
	}
	return "Signup failed"
}

func loginRequest(c Credentials) models.LoginRequest {
	return models.LoginRequest{
		Username: c.Email,
		Password: c.Password,
	}
}

func signupRequest(c Credentials) models.SignupRequest {
	return models.SignupRequest{
		Username: c.Username,
		Email:    c.Email,
		Password: c.Password,
	}
}

func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			if fieldErr.Tag() == "required" {
				return RequiredFieldsMessage
			}
		}
		return InvalidEmailMessage
	}
	return RequiredFieldsMessage
}
