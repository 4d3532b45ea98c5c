package fireauth

import (
	"context"
	"log/slog"
	"net/http"
)

// App is the privileged entry point for one project. It owns the
// credentials; the auth managers and verifiers built from it share
// them.
type App struct {
	creds       Credentials
	emulatorURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

// AppOption customizes an App.
type AppOption func(*App)

// WithHTTPClient overrides the HTTP client used for admin API calls.
func WithHTTPClient(client *http.Client) AppOption {
	return func(a *App) {
		a.httpClient = client
	}
}

// WithLogger enables debug logging for admin API calls and key cache
// refreshes.
func WithLogger(logger *slog.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp builds an App for a live project using Application Default
// Credentials; the project id is discovered from them.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	creds, err := NewGoogleCredentials(ctx)
	if err != nil {
		return nil, err
	}
	return NewAppWithCredentials(creds, opts...), nil
}

// NewAppWithCredentials builds an App around pre-built credentials.
func NewAppWithCredentials(creds Credentials, opts ...AppOption) *App {
	app := &App{creds: creds}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// NewEmulatorApp builds an App backed by a local emulator instance.
func NewEmulatorApp(emulatorURL string, opts ...AppOption) *App {
	app := NewAppWithCredentials(NewEmulatorCredentials(), opts...)
	app.emulatorURL = emulatorURL
	return app
}

// ProjectID returns the project this App administers.
func (a *App) ProjectID() string {
	return a.creds.ProjectID()
}

// Auth returns the account management interface. Emulator apps get the
// emulator admin surface as well.
func (a *App) Auth() *Auth {
	client := newAPIClient(a.creds, a.httpClient, a.logger)
	if a.emulatorURL != "" {
		return newEmulatedAuth(client, a.emulatorURL, a.creds.ProjectID())
	}
	return newLiveAuth(client, a.creds.ProjectID())
}

// IDTokenVerifier builds a verifier for this project's ID tokens. For
// emulator apps the verifier decodes without validation.
func (a *App) IDTokenVerifier(ctx context.Context) (TokenVerifier, error) {
	if a.emulatorURL != "" {
		return NewEmulatedTokenVerifier(a.creds.ProjectID()), nil
	}
	return NewIDTokenVerifier(ctx, VerifierConfig{
		ProjectID: a.creds.ProjectID(),
		Logger:    a.logger,
	})
}

// SessionCookieVerifier builds a verifier for this project's session
// cookies.
func (a *App) SessionCookieVerifier(ctx context.Context) (TokenVerifier, error) {
	if a.emulatorURL != "" {
		return NewEmulatedTokenVerifier(a.creds.ProjectID()), nil
	}
	return NewSessionCookieVerifier(ctx, VerifierConfig{
		ProjectID: a.creds.ProjectID(),
		Logger:    a.logger,
	})
}
