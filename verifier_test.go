package fireauth

import (
	"context"
	"crypto/rsa"
	"errors"
	"testing"
	"time"
)

const testProjectID = "test_project"

type staticFetcher struct {
	data   []byte
	maxAge time.Duration
	err    error
}

func (f *staticFetcher) Fetch(ctx context.Context, url string) (Resource, error) {
	if f.err != nil {
		return Resource{}, f.err
	}
	return Resource{Data: f.data, MaxAge: f.maxAge}, nil
}

// tokenFixture mints keys, a certificate key-source document and a
// ready verifier for them.
type tokenFixture struct {
	key      *rsa.PrivateKey
	verifier *LiveTokenVerifier
}

func newTokenFixture(t *testing.T) *tokenFixture {
	t.Helper()
	certPEM, key, err := GenerateTestCert()
	if err != nil {
		t.Fatalf("GenerateTestCert: %v", err)
	}
	doc := keyMapDocument(t, map[string][]byte{"123": certPEM})

	verifier, err := NewIDTokenVerifier(context.Background(), VerifierConfig{
		ProjectID: testProjectID,
		Fetcher:   &staticFetcher{data: doc, maxAge: time.Hour},
	})
	if err != nil {
		t.Fatalf("NewIDTokenVerifier: %v", err)
	}
	return &tokenFixture{key: key, verifier: verifier}
}

func (f *tokenFixture) validClaims() TokenClaims {
	now := NewUnixTime(time.Now())
	return TokenClaims{
		Expires:  NewUnixTime(now.Add(time.Hour)),
		IssuedAt: now,
		Audience: testProjectID,
		Issuer:   idTokenIssuerPrefix + testProjectID,
		Subject:  "user-1",
		AuthTime: now,
	}
}

func (f *tokenFixture) mint(t *testing.T, header TokenHeader, claims any) string {
	t.Helper()
	encoded, err := EncodeToken(header, claims, NewRS256Signer(f.key))
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	return encoded
}

func rs256Header() TokenHeader {
	return TokenHeader{Algorithm: AlgorithmRS256, KeyID: "123"}
}

func TestVerifyTokenValid(t *testing.T) {
	f := newTokenFixture(t)
	encoded := f.mint(t, rs256Header(), f.validClaims())

	token, err := f.verifier.VerifyToken(context.Background(), encoded)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if token.Claims.Subject != "user-1" {
		t.Fatalf("unexpected subject: %s", token.Claims.Subject)
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	f := newTokenFixture(t)

	_, otherKey, err := GenerateTestCert()
	if err != nil {
		t.Fatalf("GenerateTestCert: %v", err)
	}
	intruder := &tokenFixture{key: otherKey}
	encoded := intruder.mint(t, rs256Header(), f.validClaims())

	_, err = f.verifier.VerifyToken(context.Background(), encoded)
	if CodeOf(err) != ErrCodeInvalidSignature {
		t.Fatalf("expected invalid signature, got %v", err)
	}
}

func TestVerifyTokenClaimFailures(t *testing.T) {
	f := newTokenFixture(t)

	cases := []struct {
		name   string
		mutate func(*TokenClaims)
		code   ErrorCode
	}{
		{"expired", func(c *TokenClaims) {
			c.Expires = NewUnixTime(time.Now().Add(-time.Minute))
		}, ErrCodeExpired},
		{"issued in the future", func(c *TokenClaims) {
			c.IssuedAt = NewUnixTime(time.Now().Add(time.Hour))
		}, ErrCodeIssuedInFuture},
		{"auth_time in the future", func(c *TokenClaims) {
			c.AuthTime = NewUnixTime(time.Now().Add(time.Hour))
		}, ErrCodeIssuedInFuture},
		{"wrong audience", func(c *TokenClaims) {
			c.Audience = "other_project"
		}, ErrCodeInvalidAudience},
		{"wrong issuer", func(c *TokenClaims) {
			c.Issuer = idTokenIssuerPrefix + "other_project"
		}, ErrCodeInvalidIssuer},
		{"empty subject", func(c *TokenClaims) {
			c.Subject = ""
		}, ErrCodeMissingSubject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims := f.validClaims()
			tc.mutate(&claims)
			encoded := f.mint(t, rs256Header(), claims)

			_, err := f.verifier.VerifyToken(context.Background(), encoded)
			if CodeOf(err) != tc.code {
				t.Fatalf("unexpected result: got %v want code %s", err, tc.code)
			}
		})
	}
}

func TestVerifyTokenClockSkewTolerance(t *testing.T) {
	f := newTokenFixture(t)

	// iat a few seconds ahead stays within the default tolerance.
	claims := f.validClaims()
	claims.IssuedAt = NewUnixTime(time.Now().Add(5 * time.Second))
	claims.AuthTime = claims.IssuedAt
	encoded := f.mint(t, rs256Header(), claims)

	if _, err := f.verifier.VerifyToken(context.Background(), encoded); err != nil {
		t.Fatalf("token within clock skew rejected: %v", err)
	}
}

func TestVerifyTokenUnknownKey(t *testing.T) {
	f := newTokenFixture(t)
	encoded := f.mint(t, TokenHeader{Algorithm: AlgorithmRS256, KeyID: "999"}, f.validClaims())

	_, err := f.verifier.VerifyToken(context.Background(), encoded)
	if CodeOf(err) != ErrCodeUnknownKey {
		t.Fatalf("expected unknown key, got %v", err)
	}
}

func TestVerifyTokenRejectsOtherAlgorithms(t *testing.T) {
	f := newTokenFixture(t)
	encoded := f.mint(t, TokenHeader{Algorithm: AlgorithmHS256, KeyID: "123"}, f.validClaims())

	_, err := f.verifier.VerifyToken(context.Background(), encoded)
	if CodeOf(err) != ErrCodeInvalidAlgorithm {
		t.Fatalf("expected algorithm rejection, got %v", err)
	}
}

func TestVerifyTokenKeysUnavailable(t *testing.T) {
	certPEM, key, err := GenerateTestCert()
	if err != nil {
		t.Fatalf("GenerateTestCert: %v", err)
	}
	doc := keyMapDocument(t, map[string][]byte{"123": certPEM})

	// Zero lifetime forces a refetch on every verification.
	fetcher := &staticFetcher{data: doc}
	verifier, err := NewIDTokenVerifier(context.Background(), VerifierConfig{
		ProjectID: testProjectID,
		Fetcher:   fetcher,
	})
	if err != nil {
		t.Fatalf("NewIDTokenVerifier: %v", err)
	}
	f := &tokenFixture{key: key, verifier: verifier}
	encoded := f.mint(t, rs256Header(), f.validClaims())

	fetcher.err = errors.New("key source down")
	_, err = verifier.VerifyToken(context.Background(), encoded)
	if CodeOf(err) != ErrCodeKeysUnavailable {
		t.Fatalf("expected keys unavailable, got %v", err)
	}
}

func TestNewVerifierRequiresProject(t *testing.T) {
	_, err := NewIDTokenVerifier(context.Background(), VerifierConfig{})
	if err == nil {
		t.Fatal("expected error for missing project id")
	}
}

func TestNewVerifierInitialFetchFailure(t *testing.T) {
	_, err := NewIDTokenVerifier(context.Background(), VerifierConfig{
		ProjectID: testProjectID,
		Fetcher:   &staticFetcher{err: errors.New("unreachable")},
	})
	if CodeOf(err) != ErrCodeCacheInit {
		t.Fatalf("expected cache init failure, got %v", err)
	}
}

func TestSessionCookieVerifierIssuer(t *testing.T) {
	certPEM, key, err := GenerateTestCert()
	if err != nil {
		t.Fatalf("GenerateTestCert: %v", err)
	}
	doc := keyMapDocument(t, map[string][]byte{"123": certPEM})

	verifier, err := NewSessionCookieVerifier(context.Background(), VerifierConfig{
		ProjectID: testProjectID,
		Fetcher:   &staticFetcher{data: doc, maxAge: time.Hour},
	})
	if err != nil {
		t.Fatalf("NewSessionCookieVerifier: %v", err)
	}
	f := &tokenFixture{key: key, verifier: verifier}

	claims := f.validClaims()
	claims.Issuer = sessionCookieIssuerPrefix + testProjectID
	encoded := f.mint(t, rs256Header(), claims)
	if _, err := verifier.VerifyToken(context.Background(), encoded); err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	// An ID token issuer is not acceptable for a session cookie.
	encoded = f.mint(t, rs256Header(), f.validClaims())
	_, err = verifier.VerifyToken(context.Background(), encoded)
	if CodeOf(err) != ErrCodeInvalidIssuer {
		t.Fatalf("expected issuer rejection, got %v", err)
	}
}

func TestEmulatedVerifierDecodesOnly(t *testing.T) {
	f := &tokenFixture{}
	_, key, err := GenerateTestCert()
	if err != nil {
		t.Fatalf("GenerateTestCert: %v", err)
	}
	f.key = key

	claims := f.validClaims()
	claims.Expires = NewUnixTime(time.Now().Add(-time.Hour))
	encoded := f.mint(t, rs256Header(), claims)

	verifier := NewEmulatedTokenVerifier(testProjectID)
	token, err := verifier.VerifyToken(context.Background(), encoded)
	if err != nil {
		t.Fatalf("emulated verifier should accept an expired token: %v", err)
	}
	if token.Claims.Subject != "user-1" {
		t.Fatalf("unexpected subject: %s", token.Claims.Subject)
	}

	if _, err := verifier.VerifyToken(context.Background(), "not-a-token"); CodeOf(err) != ErrCodeMalformedToken {
		t.Fatalf("malformed input should still fail decoding, got %v", err)
	}
}
