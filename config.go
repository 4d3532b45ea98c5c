package fireauth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultClockSkew   = 10 * time.Second
	defaultHTTPTimeout = 10 * time.Second
)

// VerifierConfig contains the parameters of a live token verifier. One
// configuration serves one verification purpose (ID token or session
// cookie); the purposes differ in issuer prefix and key endpoint.
type VerifierConfig struct {
	// ProjectID is the expected token audience.
	ProjectID string
	// KeyURL overrides the key source endpoint. Defaults to the
	// endpoint of the verifier's purpose.
	KeyURL string
	// ParseKeys parses the key source payload. Defaults to
	// ParseKeyMap (key-id to PEM JSON object); key sources that
	// publish JWKS instead can set ParseJWKS.
	ParseKeys func([]byte) (KeyMap, error)
	// ClockSkew is the forward tolerance applied to iat and
	// auth_time checks to absorb clock drift.
	ClockSkew time.Duration
	// HTTPTimeout bounds key source fetches made by the default
	// fetcher.
	HTTPTimeout time.Duration
	// Fetcher overrides how key material is retrieved. Defaults to an
	// HTTPFetcher; tests supply stubs.
	Fetcher Fetcher
	// Logger receives debug records for key refreshes. Silent when
	// nil.
	Logger *slog.Logger
}

// normalize sets default values for optional fields.
func (c *VerifierConfig) normalize() {
	if c.ParseKeys == nil {
		c.ParseKeys = ParseKeyMap
	}
	if c.ClockSkew <= 0 {
		c.ClockSkew = defaultClockSkew
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = defaultHTTPTimeout
	}
	if c.Fetcher == nil {
		c.Fetcher = &HTTPFetcher{
			Client: &http.Client{
				Timeout: c.HTTPTimeout,
				Transport: &http.Transport{
					Proxy: http.ProxyFromEnvironment,
				},
			},
		}
	}
}

// validate ensures the configuration is usable.
func (c VerifierConfig) validate() error {
	if c.ProjectID == "" {
		return errors.New("project id is required")
	}
	return nil
}
