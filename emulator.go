package fireauth

import (
	"context"
	"errors"
	"net/http"
)

// EmulatorConfigurationSignIn holds the emulator's sign-in settings.
type EmulatorConfigurationSignIn struct {
	AllowDuplicateEmails bool `json:"allowDuplicateEmails"`
}

// EmulatorConfiguration is the emulator's project configuration.
type EmulatorConfiguration struct {
	SignIn EmulatorConfigurationSignIn `json:"signIn"`
}

// OobCode is an out-of-band code pending inside the emulator.
type OobCode struct {
	Email       string            `json:"email"`
	OobCode     string            `json:"oobCode"`
	OobLink     string            `json:"oobLink"`
	RequestType OobCodeActionType `json:"requestType"`
}

type oobCodesResponse struct {
	OobCodes []OobCode `json:"oobCodes"`
}

// SmsVerificationCode is a pending SMS code inside the emulator.
type SmsVerificationCode struct {
	PhoneNumber string `json:"phoneNumber"`
	SessionCode string `json:"sessionCode"`
}

type smsVerificationCodesResponse struct {
	VerificationCodes []SmsVerificationCode `json:"verificationCodes"`
}

func (a *Auth) emulatorURIBuilder() (uriBuilder, error) {
	if a.emulatorURIs == nil {
		return uriBuilder{}, newError(ErrCodeEmulatorOnly, errors.New("auth manager was built for a live project"))
	}
	return *a.emulatorURIs, nil
}

// ClearAllUsers deletes every account within the emulator.
func (a *Auth) ClearAllUsers(ctx context.Context) error {
	uris, err := a.emulatorURIBuilder()
	if err != nil {
		return err
	}
	return a.client.do(ctx, http.MethodDelete, uris.build(pathClearUserAccounts), nil, nil, nil)
}

// EmulatorConfiguration returns the emulator's current configuration.
func (a *Auth) EmulatorConfiguration(ctx context.Context) (*EmulatorConfiguration, error) {
	uris, err := a.emulatorURIBuilder()
	if err != nil {
		return nil, err
	}
	var cfg EmulatorConfiguration
	if err := a.client.get(ctx, uris.build(pathConfiguration), nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateEmulatorConfiguration patches the emulator's configuration and
// returns the resulting state.
func (a *Auth) UpdateEmulatorConfiguration(ctx context.Context, cfg EmulatorConfiguration) (*EmulatorConfiguration, error) {
	uris, err := a.emulatorURIBuilder()
	if err != nil {
		return nil, err
	}
	var updated EmulatorConfiguration
	if err := a.client.do(ctx, http.MethodPatch, uris.build(pathConfiguration), nil, cfg, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// OobCodes returns the out-of-band codes currently pending inside the
// emulator.
func (a *Auth) OobCodes(ctx context.Context) ([]OobCode, error) {
	uris, err := a.emulatorURIBuilder()
	if err != nil {
		return nil, err
	}
	var resp oobCodesResponse
	if err := a.client.get(ctx, uris.build(pathOobCodes), nil, &resp); err != nil {
		return nil, err
	}
	return resp.OobCodes, nil
}

// SmsVerificationCodes returns the SMS codes currently pending inside
// the emulator.
func (a *Auth) SmsVerificationCodes(ctx context.Context) ([]SmsVerificationCode, error) {
	uris, err := a.emulatorURIBuilder()
	if err != nil {
		return nil, err
	}
	var resp smsVerificationCodesResponse
	if err := a.client.get(ctx, uris.build(pathSmsVerificationCodes), nil, &resp); err != nil {
		return nil, err
	}
	return resp.VerificationCodes, nil
}
