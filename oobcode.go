package fireauth

import "context"

// OobCodeActionType names an out-of-band email action.
type OobCodeActionType string

const (
	OobActionVerifyEmail   OobCodeActionType = "VERIFY_EMAIL"
	OobActionEmailSignin   OobCodeActionType = "EMAIL_SIGNIN"
	OobActionPasswordReset OobCodeActionType = "PASSWORD_RESET"
	OobActionRecoverEmail  OobCodeActionType = "RECOVER_EMAIL"
)

// OobCodeAction requests an out-of-band action link for a user.
type OobCodeAction struct {
	RequestType           OobCodeActionType `json:"requestType,omitempty"`
	Email                 string            `json:"email,omitempty"`
	ReturnOobLink         bool              `json:"returnOobLink"`
	ContinueURL           string            `json:"continueUrl,omitempty"`
	CanHandleCodeInApp    *bool             `json:"canHandleCodeInApp,omitempty"`
	DynamicLinkDomain     string            `json:"dynamicLinkDomain,omitempty"`
	IOSBundleID           string            `json:"iOSBundleId,omitempty"`
	AndroidPackageName    string            `json:"androidPackageName,omitempty"`
	AndroidMinimumVersion string            `json:"androidMinimumVersion,omitempty"`
	AndroidInstallApp     *bool             `json:"androidInstallApp,omitempty"`
}

// NewOobCodeAction requests a link of the given type for email. The
// link is returned to the caller instead of being emailed directly.
func NewOobCodeAction(actionType OobCodeActionType, email string) OobCodeAction {
	return OobCodeAction{
		RequestType:   actionType,
		Email:         email,
		ReturnOobLink: true,
	}
}

// WithContinueURL sets the URL the user lands on after completing the
// action.
func (a OobCodeAction) WithContinueURL(continueURL string) OobCodeAction {
	a.ContinueURL = continueURL
	return a
}

// WithIOSSettings marks the link as handleable inside the given iOS
// app.
func (a OobCodeAction) WithIOSSettings(continueURL, bundleID string) OobCodeAction {
	inApp := true
	a.ContinueURL = continueURL
	a.IOSBundleID = bundleID
	a.CanHandleCodeInApp = &inApp
	return a
}

// WithAndroidSettings marks the link as handleable inside the given
// Android app.
func (a OobCodeAction) WithAndroidSettings(continueURL, packageName, minimumVersion string, installApp *bool) OobCodeAction {
	inApp := true
	a.ContinueURL = continueURL
	a.AndroidPackageName = packageName
	a.AndroidMinimumVersion = minimumVersion
	a.AndroidInstallApp = installApp
	a.CanHandleCodeInApp = &inApp
	return a
}

type oobCodeLink struct {
	OobLink string `json:"oobLink"`
}

// GenerateEmailActionLink requests the action link for the given OOB
// action and returns it.
func (a *Auth) GenerateEmailActionLink(ctx context.Context, action OobCodeAction) (string, error) {
	var link oobCodeLink
	if err := a.client.post(ctx, a.uris.build(pathSendOobCode), action, &link); err != nil {
		return "", err
	}
	return link.OobLink, nil
}
