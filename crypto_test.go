package fireauth

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

func decodeSegment(t *testing.T, segment string) []byte {
	t.Helper()
	data, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		t.Fatalf("decode segment: %v", err)
	}
	return data
}

func TestSigningKeyVerify(t *testing.T) {
	signer, key := newTestSigner(t)

	input := "header.payload"
	sigB64, err := signer.SignJWT("header", "payload")
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	signature := decodeSegment(t, sigB64)

	valid, err := NewSigningKey(&key.PublicKey).Verify([]byte(input), signature)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !valid {
		t.Fatal("signature should verify")
	}

	// Tampered input is a mismatch, not an error.
	valid, err = NewSigningKey(&key.PublicKey).Verify([]byte("header.tampered"), signature)
	if err != nil {
		t.Fatalf("Verify tampered: %v", err)
	}
	if valid {
		t.Fatal("tampered input should not verify")
	}

	// A different key is also just a mismatch.
	_, other := newTestSigner(t)
	valid, err = NewSigningKey(&other.PublicKey).Verify([]byte(input), signature)
	if err != nil {
		t.Fatalf("Verify wrong key: %v", err)
	}
	if valid {
		t.Fatal("wrong key should not verify")
	}
}

func TestSigningKeyVerifyUninitialized(t *testing.T) {
	var key *SigningKey
	if _, err := key.Verify([]byte("x"), []byte("y")); err == nil {
		t.Fatal("expected error for nil key")
	}
	if _, err := (&SigningKey{}).Verify([]byte("x"), []byte("y")); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestParseKeyMapFromCertificates(t *testing.T) {
	certPEM, key, err := GenerateTestCert()
	if err != nil {
		t.Fatalf("GenerateTestCert: %v", err)
	}

	doc, err := json.Marshal(map[string]string{"123": string(certPEM)})
	if err != nil {
		t.Fatalf("marshal key map: %v", err)
	}

	keys, err := ParseKeyMap(doc)
	if err != nil {
		t.Fatalf("ParseKeyMap: %v", err)
	}
	parsed, ok := keys["123"]
	if !ok {
		t.Fatal("key id 123 missing from parsed map")
	}
	if !parsed.key.Equal(&key.PublicKey) {
		t.Fatal("parsed certificate key differs from the generated one")
	}
}

func TestParseKeyMapPKIXPublicKey(t *testing.T) {
	_, key := newTestSigner(t)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pemText := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	doc, err := json.Marshal(map[string]string{"pk": string(pemText)})
	if err != nil {
		t.Fatalf("marshal key map: %v", err)
	}
	keys, err := ParseKeyMap(doc)
	if err != nil {
		t.Fatalf("ParseKeyMap: %v", err)
	}
	if !keys["pk"].key.Equal(&key.PublicKey) {
		t.Fatal("parsed PKIX key differs from the generated one")
	}
}

func TestParseKeyMapRejectsGarbage(t *testing.T) {
	if _, err := ParseKeyMap([]byte(`{"bad":"not a pem block"}`)); err == nil {
		t.Fatal("expected error for non-PEM value")
	}
	if _, err := ParseKeyMap([]byte(`[]`)); err == nil {
		t.Fatal("expected error for non-object document")
	}
}

func TestParseJWKS(t *testing.T) {
	_, key := newTestSigner(t)

	jwkKey, err := jwk.FromRaw(&key.PublicKey)
	if err != nil {
		t.Fatalf("jwk.FromRaw: %v", err)
	}
	if err := jwkKey.Set(jwk.KeyIDKey, "jwks-1"); err != nil {
		t.Fatalf("set kid: %v", err)
	}
	set := jwk.NewSet()
	if err := set.AddKey(jwkKey); err != nil {
		t.Fatalf("add key: %v", err)
	}
	doc, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal set: %v", err)
	}

	keys, err := ParseJWKS(doc)
	if err != nil {
		t.Fatalf("ParseJWKS: %v", err)
	}
	parsed, ok := keys["jwks-1"]
	if !ok {
		t.Fatal("key id jwks-1 missing from parsed JWKS")
	}
	if !parsed.key.Equal(&key.PublicKey) {
		t.Fatal("parsed JWKS key differs from the generated one")
	}
}

func TestGenerateTestCertRoundTrips(t *testing.T) {
	certPEM, key, err := GenerateTestCert()
	if err != nil {
		t.Fatalf("GenerateTestCert: %v", err)
	}
	parsed, err := parsePEMPublicKey(certPEM)
	if err != nil {
		t.Fatalf("parsePEMPublicKey: %v", err)
	}
	if !parsed.Equal(&key.PublicKey) {
		t.Fatal("certificate does not carry the generated public key")
	}
}

// keyMapDocument builds the certificate key-source wire format for a set
// of kid to PEM pairs.
func keyMapDocument(t *testing.T, pairs map[string][]byte) []byte {
	t.Helper()
	doc := make(map[string]string, len(pairs))
	for kid, pemBytes := range pairs {
		doc[kid] = string(pemBytes)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal key map: %v", err)
	}
	return data
}
