package fireauth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// SigningKey is an RSA public key used to check RS256 signatures. It
// unmarshals from the key-source wire format: a JSON string holding a
// PEM encoded X.509 certificate or public key.
type SigningKey struct {
	key *rsa.PublicKey
}

// NewSigningKey wraps an RSA public key.
func NewSigningKey(key *rsa.PublicKey) *SigningKey {
	return &SigningKey{key: key}
}

// Verify checks an RS256 signature over signingInput. A cryptographic
// mismatch returns (false, nil); malformed input returns an error.
func (k *SigningKey) Verify(signingInput, signature []byte) (bool, error) {
	if k == nil || k.key == nil {
		return false, errors.New("signing key is not initialized")
	}
	digest := sha256.Sum256(signingInput)
	err := rsa.VerifyPKCS1v15(k.key, crypto.SHA256, digest[:], signature)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, rsa.ErrVerification) {
		return false, nil
	}
	return false, err
}

func (k *SigningKey) UnmarshalJSON(data []byte) error {
	var pemText string
	if err := json.Unmarshal(data, &pemText); err != nil {
		return err
	}
	key, err := parsePEMPublicKey([]byte(pemText))
	if err != nil {
		return err
	}
	k.key = key
	return nil
}

func parsePEMPublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	switch block.Type {
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		key, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("certificate holds a %T, want an RSA public key", cert.PublicKey)
		}
		return key, nil
	case "PUBLIC KEY":
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		key, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("PEM holds a %T, want an RSA public key", parsed)
		}
		return key, nil
	case "RSA PUBLIC KEY":
		return x509.ParsePKCS1PublicKey(block.Bytes)
	default:
		return nil, fmt.Errorf("unsupported PEM block type %q", block.Type)
	}
}

// KeyMap maps key ids to the public keys currently accepted by an
// issuer.
type KeyMap map[string]*SigningKey

// ParseKeyMap parses the JSON object of key-id to PEM text published by
// the certificate key sources.
func ParseKeyMap(data []byte) (KeyMap, error) {
	var keys KeyMap
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// ParseJWKS parses a JWKS document into a KeyMap. Non-RSA keys and keys
// without a key id are skipped.
func ParseJWKS(data []byte) (KeyMap, error) {
	set, err := jwk.Parse(data)
	if err != nil {
		return nil, err
	}
	keys := make(KeyMap, set.Len())
	for i := 0; i < set.Len(); i++ {
		key, ok := set.Key(i)
		if !ok || key.KeyID() == "" {
			continue
		}
		var raw any
		if err := key.Raw(&raw); err != nil {
			return nil, err
		}
		if pub, ok := raw.(*rsa.PublicKey); ok {
			keys[key.KeyID()] = NewSigningKey(pub)
		}
	}
	return keys, nil
}

// RS256Signer signs token segments with an RSA private key.
type RS256Signer struct {
	key *rsa.PrivateKey
}

// NewRS256Signer wraps an RSA private key as a Signer.
func NewRS256Signer(key *rsa.PrivateKey) *RS256Signer {
	return &RS256Signer{key: key}
}

func (s *RS256Signer) SignJWT(headerB64, payloadB64 string) (string, error) {
	digest := sha256.Sum256([]byte(headerB64 + "." + payloadB64))
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, digest[:])
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(signature), nil
}

// GenerateTestCert creates a throwaway self-signed certificate and its
// private key, for minting tokens in tests and local tooling.
func GenerateTestCert() (certPEM []byte, key *rsa.PrivateKey, err error) {
	key, err = rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, err
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 159))
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Country:      []string{"JP"},
			Organization: []string{"Firebase"},
			CommonName:   "Firebase test",
		},
		NotBefore: now,
		NotAfter:  now.Add(24 * time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, nil, err
	}

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	return certPEM, key, nil
}
