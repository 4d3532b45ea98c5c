package fireauth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var firebaseAuthScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/userinfo.email",
}

const userProjectHeader = "X-Goog-User-Project"

// Credentials injects authentication headers into outgoing admin API
// requests and knows which project they act on.
type Credentials interface {
	ProjectID() string
	SetAuthHeaders(ctx context.Context, h http.Header) error
}

// GoogleCredentials authenticates with Application Default Credentials.
// All requests share one reusing token source, so access tokens are
// minted once and refreshed only on expiry.
type GoogleCredentials struct {
	projectID string
	source    oauth2.TokenSource
}

// NewGoogleCredentials discovers Application Default Credentials with
// the admin API scopes. The project id comes from the credentials,
// falling back to GOOGLE_CLOUD_PROJECT. The token source is bound to a
// context detached from ctx, so cancelling the construction context
// cannot poison later token refreshes.
func NewGoogleCredentials(ctx context.Context) (*GoogleCredentials, error) {
	creds, err := google.FindDefaultCredentials(persistentContext(ctx), firebaseAuthScopes...)
	if err != nil {
		return nil, newError(ErrCodeCredentials, err)
	}

	projectID := creds.ProjectID
	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if projectID == "" {
		return nil, newError(ErrCodeCredentials, errors.New("could not determine project id from credentials"))
	}

	return &GoogleCredentials{
		projectID: projectID,
		source:    oauth2.ReuseTokenSource(nil, creds.TokenSource),
	}, nil
}

func (c *GoogleCredentials) ProjectID() string {
	return c.projectID
}

func (c *GoogleCredentials) SetAuthHeaders(_ context.Context, h http.Header) error {
	token, err := c.source.Token()
	if err != nil {
		return newError(ErrCodeCredentials, err)
	}
	h.Set("Authorization", "Bearer "+token.AccessToken)
	h.Set(userProjectHeader, c.projectID)
	return nil
}

func persistentContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	if _, ok := ctx.(*detachedContext); ok {
		return ctx
	}
	return &detachedContext{parent: ctx}
}

type detachedContext struct {
	parent context.Context
}

func (d *detachedContext) Deadline() (time.Time, bool) {
	return time.Time{}, false
}

func (d *detachedContext) Done() <-chan struct{} {
	return nil
}

func (d *detachedContext) Err() error {
	return nil
}

func (d *detachedContext) Value(key any) any {
	if d.parent == nil {
		return nil
	}
	return d.parent.Value(key)
}

// EmulatorCredentials authenticates against the local emulator, which
// accepts a fixed owner token.
type EmulatorCredentials struct {
	Project string
}

// NewEmulatorCredentials resolves the project id from the environment,
// defaulting to the demo project the emulator starts with.
func NewEmulatorCredentials() *EmulatorCredentials {
	project := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if project == "" {
		project = os.Getenv("PROJECT_ID")
	}
	if project == "" {
		project = "demo-firebase-project"
	}
	return &EmulatorCredentials{Project: project}
}

func (c *EmulatorCredentials) ProjectID() string {
	return c.Project
}

func (c *EmulatorCredentials) SetAuthHeaders(_ context.Context, h http.Header) error {
	h.Set("Authorization", "Bearer owner")
	h.Set(userProjectHeader, c.Project)
	return nil
}
