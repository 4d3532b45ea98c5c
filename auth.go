package fireauth

import (
	"context"
	"time"
)

// Auth is the admin manager for a project's identity accounts. All
// methods are safe for concurrent use; state is limited to the shared
// API client and pre-built endpoint roots.
type Auth struct {
	client       *apiClient
	uris         uriBuilder
	emulatorURIs *uriBuilder
}

func newLiveAuth(client *apiClient, projectID string) *Auth {
	return &Auth{
		client: client,
		uris:   liveAuthRoot(projectID),
	}
}

func newEmulatedAuth(client *apiClient, emulatorURL, projectID string) *Auth {
	admin := emulatorAdminRoot(emulatorURL, projectID)
	return &Auth{
		client:       client,
		uris:         emulatedAuthRoot(emulatorURL, projectID),
		emulatorURIs: &admin,
	}
}

type createSessionCookieBody struct {
	IDToken       string `json:"idToken"`
	ValidDuration int64  `json:"validDuration"`
}

type sessionCookieResponse struct {
	SessionCookie string `json:"sessionCookie"`
}

// CreateSessionCookie exchanges a fresh ID token for a session cookie
// valid for validFor. The cookie verifies with the session cookie
// verifier, not the ID token one.
func (a *Auth) CreateSessionCookie(ctx context.Context, idToken string, validFor time.Duration) (string, error) {
	body := createSessionCookieBody{
		IDToken:       idToken,
		ValidDuration: int64(validFor.Seconds()),
	}
	var resp sessionCookieResponse
	if err := a.client.post(ctx, a.uris.build(pathCreateSessionCookie), body, &resp); err != nil {
		return "", err
	}
	return resp.SessionCookie, nil
}
