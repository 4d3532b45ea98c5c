package fireauth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	idTokenIssuerPrefix       = "https://securetoken.google.com/"
	sessionCookieIssuerPrefix = "https://session.firebase.google.com/"

	idTokenKeyURL       = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	sessionCookieKeyURL = "https://www.googleapis.com/identitytoolkit/v3/relyingparty/publicKeys"
)

// TokenVerifier checks an encoded identity token and returns its
// decoded form when it is acceptable.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Token, error)
}

// EmulatedTokenVerifier decodes tokens without any claims or signature
// validation. The local emulator environment is trusted by
// construction; this is the documented contract, not an omission to be
// tightened quietly.
type EmulatedTokenVerifier struct {
	projectID string
}

// NewEmulatedTokenVerifier builds a verifier for emulator-issued
// tokens.
func NewEmulatedTokenVerifier(projectID string) *EmulatedTokenVerifier {
	return &EmulatedTokenVerifier{projectID: projectID}
}

func (v *EmulatedTokenVerifier) VerifyToken(_ context.Context, token string) (*Token, error) {
	return DecodeToken(token)
}

// LiveTokenVerifier verifies tokens issued for a live project: header,
// claims and signature checks against a self-refreshing key cache. It
// holds no mutable state beyond the cache handle; VerifyToken calls are
// independent and may run concurrently.
type LiveTokenVerifier struct {
	audience  string
	issuer    string
	clockSkew time.Duration
	keys      *HTTPCache[KeyMap]

	now func() time.Time
}

// NewIDTokenVerifier builds a verifier for ID tokens. The initial key
// fetch happens synchronously; construction fails if it fails.
func NewIDTokenVerifier(ctx context.Context, cfg VerifierConfig) (*LiveTokenVerifier, error) {
	return newLiveVerifier(ctx, cfg, idTokenIssuerPrefix, idTokenKeyURL)
}

// NewSessionCookieVerifier builds a verifier for session cookies, which
// use a distinct issuer prefix and key endpoint.
func NewSessionCookieVerifier(ctx context.Context, cfg VerifierConfig) (*LiveTokenVerifier, error) {
	return newLiveVerifier(ctx, cfg, sessionCookieIssuerPrefix, sessionCookieKeyURL)
}

func newLiveVerifier(ctx context.Context, cfg VerifierConfig, issuerPrefix, keyURL string) (*LiveTokenVerifier, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.normalize()

	if cfg.KeyURL != "" {
		keyURL = cfg.KeyURL
	}

	keys, err := NewHTTPCache(ctx, cfg.Fetcher, keyURL, cfg.ParseKeys, cfg.Logger)
	if err != nil {
		return nil, err
	}

	return &LiveTokenVerifier{
		audience:  cfg.ProjectID,
		issuer:    issuerPrefix + cfg.ProjectID,
		clockSkew: cfg.ClockSkew,
		keys:      keys,
		now:       time.Now,
	}, nil
}

// VerifyToken decodes the token and runs the header, claims and
// signature checks in order; each failure short-circuits the rest. On
// success the decoded token, including its full claim map, is returned.
func (v *LiveTokenVerifier) VerifyToken(ctx context.Context, token string) (*Token, error) {
	decoded, err := DecodeToken(token)
	if err != nil {
		return nil, err
	}
	if err := v.verifyHeader(decoded); err != nil {
		return nil, err
	}
	if err := v.verifyClaims(decoded); err != nil {
		return nil, err
	}
	if err := v.verifySignature(ctx, decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func (v *LiveTokenVerifier) verifyHeader(token *Token) error {
	if token.Header.Algorithm != AlgorithmRS256 {
		return newError(ErrCodeInvalidAlgorithm, fmt.Errorf("token uses %q, only RS256 is accepted", token.Header.Algorithm))
	}
	return nil
}

func (v *LiveTokenVerifier) verifyClaims(token *Token) error {
	now := v.now()
	skewed := now.Add(v.clockSkew)

	if !token.Claims.Expires.After(now) {
		return newError(ErrCodeExpired, nil)
	}
	if token.Claims.IssuedAt.After(skewed) {
		return newError(ErrCodeIssuedInFuture, nil)
	}
	if token.Claims.AuthTime.After(skewed) {
		return newError(ErrCodeIssuedInFuture, nil)
	}
	if token.Claims.Audience != v.audience {
		return newError(ErrCodeInvalidAudience, fmt.Errorf("got %q, want %q", token.Claims.Audience, v.audience))
	}
	if token.Claims.Issuer != v.issuer {
		return newError(ErrCodeInvalidIssuer, fmt.Errorf("got %q, want %q", token.Claims.Issuer, v.issuer))
	}
	if token.Claims.Subject == "" {
		return newError(ErrCodeMissingSubject, nil)
	}
	return nil
}

func (v *LiveTokenVerifier) verifySignature(ctx context.Context, token *Token) error {
	keys, err := v.keys.Get(ctx)
	if err != nil {
		return newError(ErrCodeKeysUnavailable, err)
	}

	key, ok := keys[token.Header.KeyID]
	if !ok {
		return newError(ErrCodeUnknownKey, fmt.Errorf("key id %q", token.Header.KeyID))
	}

	valid, err := key.Verify([]byte(token.SigningInput), token.Signature)
	if err != nil {
		return newError(ErrCodeInvalidSignature, err)
	}
	if !valid {
		return newError(ErrCodeInvalidSignature, errors.New("signature does not match"))
	}
	return nil
}
