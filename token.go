package fireauth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Algorithm is a JWT signature algorithm identifier.
type Algorithm string

const (
	AlgorithmNone  Algorithm = "none"
	AlgorithmHS256 Algorithm = "HS256"
	AlgorithmHS384 Algorithm = "HS384"
	AlgorithmHS512 Algorithm = "HS512"
	AlgorithmRS256 Algorithm = "RS256"
	AlgorithmRS384 Algorithm = "RS384"
	AlgorithmRS512 Algorithm = "RS512"
	AlgorithmES256 Algorithm = "ES256"
	AlgorithmES384 Algorithm = "ES384"
	AlgorithmES512 Algorithm = "ES512"
)

// TokenHeader is the decoded JOSE header of a compact token.
type TokenHeader struct {
	Algorithm Algorithm `json:"alg"`
	KeyID     string    `json:"kid,omitempty"`
}

// UnixTime is an instant carried as seconds since the UNIX epoch,
// accepted as either a JSON number or a numeric JSON string.
type UnixTime struct {
	time.Time
}

// NewUnixTime truncates t to whole seconds, matching the wire precision.
func NewUnixTime(t time.Time) UnixTime {
	return UnixTime{time.Unix(t.Unix(), 0).UTC()}
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

func (t *UnixTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		return nil
	}
	sec, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.New("timestamp is not a number of epoch seconds")
	}
	t.Time = time.Unix(int64(sec), 0).UTC()
	return nil
}

// TokenClaims holds the claims every issued token is expected to carry.
type TokenClaims struct {
	Expires  UnixTime `json:"exp"`
	IssuedAt UnixTime `json:"iat"`
	Audience string   `json:"aud"`
	Issuer   string   `json:"iss"`
	Subject  string   `json:"sub"`
	AuthTime UnixTime `json:"auth_time"`
}

// Token is a decoded compact token. It is only ever produced by
// DecodeToken; a decode failure produces no partial Token.
type Token struct {
	Header TokenHeader
	Claims TokenClaims
	// AllClaims preserves every payload claim losslessly.
	AllClaims map[string]any
	// SigningInput is the verbatim "header.payload" span of the encoded
	// token. It is kept as received rather than re-serialized, since
	// re-encoding JSON can change byte layout and break the signature.
	SigningInput string
	Signature    []byte
}

// Get returns a claim from the open claim map.
func (t *Token) Get(name string) (any, bool) {
	v, ok := t.AllClaims[name]
	return v, ok
}

// DecodeToken parses a compact "header.payload.signature" token string.
func DecodeToken(encoded string) (*Token, error) {
	parts := strings.Split(encoded, ".")
	if len(parts) != 3 {
		return nil, newError(ErrCodeMalformedToken, errors.New("token must have exactly three segments"))
	}
	for _, part := range parts {
		if part == "" {
			return nil, newError(ErrCodeMalformedToken, errors.New("token has an empty segment"))
		}
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, newError(ErrCodeMalformedToken, err)
	}
	var header TokenHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, newError(ErrCodeInvalidHeader, err)
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, newError(ErrCodeMalformedToken, err)
	}
	var claims TokenClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return nil, newError(ErrCodeInvalidClaims, err)
	}
	// Parsed a second time into an open map so no claim is lost.
	var allClaims map[string]any
	if err := json.Unmarshal(payloadBytes, &allClaims); err != nil {
		return nil, newError(ErrCodeInvalidClaims, err)
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, newError(ErrCodeInvalidSignature, err)
	}

	return &Token{
		Header:       header,
		Claims:       claims,
		AllClaims:    allClaims,
		SigningInput: parts[0] + "." + parts[1],
		Signature:    signature,
	}, nil
}

// Signer produces the signature segment over an encoded header and
// payload. Production issuance and test fixtures supply different
// implementations.
type Signer interface {
	SignJWT(headerB64, payloadB64 string) (string, error)
}

// EncodeToken builds a signed compact token from a header and claims
// value. It is used for token issuance and test fixtures, never for
// verification.
func EncodeToken(header, claims any, signer Signer) (string, error) {
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", newError(ErrCodeEncodeRequest, err)
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", newError(ErrCodeEncodeRequest, err)
	}

	headerB64 := base64.RawURLEncoding.EncodeToString(headerJSON)
	payloadB64 := base64.RawURLEncoding.EncodeToString(payloadJSON)

	signature, err := signer.SignJWT(headerB64, payloadB64)
	if err != nil {
		return "", err
	}

	return headerB64 + "." + payloadB64 + "." + signature, nil
}
