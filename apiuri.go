package fireauth

import "fmt"

const identityToolkitAuthority = "identitytoolkit.googleapis.com"

// Auth admin REST API endpoints, relative to a project root.
const (
	pathCreateUser          = "/accounts"
	pathGetUsers            = "/accounts:lookup"
	pathListUsers           = "/accounts:batchGet"
	pathDeleteUser          = "/accounts:delete"
	pathDeleteUsers         = "/accounts:batchDelete"
	pathUpdateUser          = "/accounts:update"
	pathImportUsers         = "/accounts:batchCreate"
	pathCreateSessionCookie = ":createSessionCookie"
	pathSendOobCode         = "/accounts:sendOobCode"
)

// Emulator admin REST API endpoints, relative to the emulator project
// root.
const (
	pathClearUserAccounts    = "/accounts"
	pathConfiguration        = "/config"
	pathOobCodes             = "/oobCodes"
	pathSmsVerificationCodes = "/verificationCodes"
)

// uriBuilder joins endpoint paths onto a fixed root prefix.
type uriBuilder struct {
	root string
}

func (b uriBuilder) build(path string) string {
	return b.root + path
}

func liveAuthRoot(projectID string) uriBuilder {
	return uriBuilder{root: fmt.Sprintf("https://%s/v1/projects/%s", identityToolkitAuthority, projectID)}
}

func emulatedAuthRoot(emulatorURL, projectID string) uriBuilder {
	return uriBuilder{root: fmt.Sprintf("%s/%s/v1/projects/%s", emulatorURL, identityToolkitAuthority, projectID)}
}

func emulatorAdminRoot(emulatorURL, projectID string) uriBuilder {
	return uriBuilder{root: fmt.Sprintf("%s/emulator/v1/projects/%s", emulatorURL, projectID)}
}
