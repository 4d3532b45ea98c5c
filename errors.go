package fireauth

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the failure category of an operation.
type ErrorCode string

const (
	// Token decoding.
	ErrCodeMalformedToken   ErrorCode = "malformed_token"
	ErrCodeInvalidHeader    ErrorCode = "invalid_header"
	ErrCodeInvalidClaims    ErrorCode = "invalid_claims"
	ErrCodeInvalidSignature ErrorCode = "invalid_signature"

	// Token verification.
	ErrCodeInvalidAlgorithm ErrorCode = "invalid_signature_algorithm"
	ErrCodeExpired          ErrorCode = "token_expired"
	ErrCodeIssuedInFuture   ErrorCode = "token_issued_in_future"
	ErrCodeInvalidAudience  ErrorCode = "invalid_audience"
	ErrCodeInvalidIssuer    ErrorCode = "invalid_issuer"
	ErrCodeMissingSubject   ErrorCode = "missing_subject"
	ErrCodeUnknownKey       ErrorCode = "unknown_signature_key"
	ErrCodeKeysUnavailable  ErrorCode = "signing_keys_unavailable"

	// Key cache and fetching.
	ErrCodeFetchFailed   ErrorCode = "fetch_failed"
	ErrCodeBadHTTPStatus ErrorCode = "bad_http_status"
	ErrCodeBadPayload    ErrorCode = "bad_resource_payload"
	ErrCodeCacheInit     ErrorCode = "cache_init_failed"

	// REST API client.
	ErrCodeEncodeRequest  ErrorCode = "encode_request_failed"
	ErrCodeRequestFailed  ErrorCode = "request_failed"
	ErrCodeAPIResponse    ErrorCode = "api_error"
	ErrCodeDecodeResponse ErrorCode = "decode_response_failed"
	ErrCodeCredentials    ErrorCode = "credentials_unavailable"
	ErrCodeEmulatorOnly   ErrorCode = "emulator_only"
)

var errorMessages = map[ErrorCode]string{
	ErrCodeMalformedToken:   "Malformed token",
	ErrCodeInvalidHeader:    "Invalid token header",
	ErrCodeInvalidClaims:    "Invalid token claims",
	ErrCodeInvalidSignature: "Invalid token signature",
	ErrCodeInvalidAlgorithm: "Invalid token signature algorithm",
	ErrCodeExpired:          "Token expired",
	ErrCodeIssuedInFuture:   "Token issued in the future",
	ErrCodeInvalidAudience:  "Invalid audience",
	ErrCodeInvalidIssuer:    "Invalid issuer",
	ErrCodeMissingSubject:   "Token has empty subject",
	ErrCodeUnknownKey:       "No public key for token's key id",
	ErrCodeKeysUnavailable:  "Failed fetching public keys",
	ErrCodeFetchFailed:      "Failed to fetch resource",
	ErrCodeBadHTTPStatus:    "Unexpected HTTP status",
	ErrCodeBadPayload:       "Failed to parse resource payload",
	ErrCodeCacheInit:        "Initial cache fetch failed",
	ErrCodeEncodeRequest:    "Failed to encode request",
	ErrCodeRequestFailed:    "Failed to send request",
	ErrCodeAPIResponse:      "API returned an error",
	ErrCodeDecodeResponse:   "Failed to decode response",
	ErrCodeCredentials:      "Failed to obtain credentials",
	ErrCodeEmulatorOnly:     "Operation is only available against the emulator",
}

// Error wraps failures with a stable code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	base := e.Message
	if base == "" {
		base = string(e.Code)
	}
	if e.Err == nil {
		return base
	}
	return fmt.Sprintf("%s: %v", base, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, err error) error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = string(code)
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf extracts the ErrorCode from err, or "" if err does not carry one.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
