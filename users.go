package fireauth

import (
	"context"
	"net/url"
	"strconv"
)

// NewUser describes an account to create.
type NewUser struct {
	UID      string `json:"localId,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// NewUserWithEmailAndPassword is the common creation shape.
func NewUserWithEmailAndPassword(email, password string) NewUser {
	return NewUser{Email: email, Password: password}
}

// ProviderUserInfo describes a user's link to one identity provider.
type ProviderUserInfo struct {
	ProviderID  string `json:"providerId"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	FederatedID string `json:"federatedId,omitempty"`
	RawID       string `json:"rawId"`
}

// User is an account record as returned by the admin API.
type User struct {
	UID               string             `json:"localId"`
	Email             string             `json:"email,omitempty"`
	DisplayName       string             `json:"displayName,omitempty"`
	PhotoURL          string             `json:"photoUrl,omitempty"`
	PhoneNumber       string             `json:"phoneNumber,omitempty"`
	LastLoginAt       *UnixMilliString   `json:"lastLoginAt,omitempty"`
	EmailVerified     bool               `json:"emailVerified,omitempty"`
	PasswordUpdatedAt *UnixMilli         `json:"passwordUpdatedAt,omitempty"`
	ValidSince        *UnixSecondsString `json:"validSince,omitempty"`
	CreatedAt         *UnixMilliString   `json:"createdAt,omitempty"`
	Salt              string             `json:"salt,omitempty"`
	PasswordHash      string             `json:"passwordHash,omitempty"`
	ProviderUserInfo  []ProviderUserInfo `json:"providerUserInfo,omitempty"`
	CustomClaims      Claims             `json:"customAttributes,omitempty"`
	Disabled          bool               `json:"disabled,omitempty"`
}

// FederatedUserID identifies a user by provider account.
type FederatedUserID struct {
	ProviderID string `json:"providerId"`
	RawID      string `json:"rawId"`
}

// UserIdentifiers filters account lookups. Any combination of fields
// may be set; matches against any of them are returned.
type UserIdentifiers struct {
	UIDs            []string         `json:"localId,omitempty"`
	Emails          []string         `json:"email,omitempty"`
	PhoneNumbers    []string         `json:"phoneNumber,omitempty"`
	FederatedUserID *FederatedUserID `json:"federatedUserId,omitempty"`
}

// ByUID filters on a single account id.
func ByUID(uid string) UserIdentifiers {
	return UserIdentifiers{UIDs: []string{uid}}
}

// ByEmail filters on a single email address.
func ByEmail(email string) UserIdentifiers {
	return UserIdentifiers{Emails: []string{email}}
}

// DeleteAttribute names a user attribute that an update removes.
type DeleteAttribute string

const (
	DeleteDisplayName DeleteAttribute = "DISPLAY_NAME"
	DeletePhotoURL    DeleteAttribute = "PHOTO_URL"
)

// DeleteProvider names a linked provider that an update removes.
type DeleteProvider string

const DeletePhoneProvider DeleteProvider = "phone"

// UserUpdate describes changes to one account. Zero-valued optional
// fields are left untouched server-side; deletions are listed
// explicitly.
type UserUpdate struct {
	UID              string             `json:"localId"`
	Email            string             `json:"email,omitempty"`
	Password         string             `json:"password,omitempty"`
	ValidSince       *UnixSecondsString `json:"validSince,omitempty"`
	EmailVerified    *bool              `json:"emailVerified,omitempty"`
	DisableUser      *bool              `json:"disableUser,omitempty"`
	DisplayName      string             `json:"displayName,omitempty"`
	PhotoURL         string             `json:"photoUrl,omitempty"`
	PhoneNumber      string             `json:"phoneNumber,omitempty"`
	CustomClaims     Claims             `json:"customAttributes,omitempty"`
	DeleteAttributes []DeleteAttribute  `json:"deleteAttribute,omitempty"`
	DeleteProviders  []DeleteProvider   `json:"deleteProvider,omitempty"`
}

// NewUserUpdate starts an update for the given account.
func NewUserUpdate(uid string) *UserUpdate {
	return &UserUpdate{UID: uid}
}

func (u *UserUpdate) SetEmail(email string) *UserUpdate {
	u.Email = email
	return u
}

func (u *UserUpdate) SetPassword(password string) *UserUpdate {
	u.Password = password
	return u
}

func (u *UserUpdate) SetDisplayName(name string) *UserUpdate {
	u.DisplayName = name
	return u
}

func (u *UserUpdate) RemoveDisplayName() *UserUpdate {
	u.DeleteAttributes = append(u.DeleteAttributes, DeleteDisplayName)
	return u
}

func (u *UserUpdate) SetPhotoURL(photoURL string) *UserUpdate {
	u.PhotoURL = photoURL
	return u
}

func (u *UserUpdate) RemovePhotoURL() *UserUpdate {
	u.DeleteAttributes = append(u.DeleteAttributes, DeletePhotoURL)
	return u
}

func (u *UserUpdate) SetPhoneNumber(phoneNumber string) *UserUpdate {
	u.PhoneNumber = phoneNumber
	return u
}

func (u *UserUpdate) RemovePhoneNumber() *UserUpdate {
	u.DeleteProviders = append(u.DeleteProviders, DeletePhoneProvider)
	return u
}

func (u *UserUpdate) SetCustomClaims(claims Claims) *UserUpdate {
	u.CustomClaims = claims
	return u
}

func (u *UserUpdate) SetEmailVerified(verified bool) *UserUpdate {
	u.EmailVerified = &verified
	return u
}

func (u *UserUpdate) SetDisabled(disabled bool) *UserUpdate {
	u.DisableUser = &disabled
	return u
}

// UserPage is one page of a paginated user listing.
type UserPage struct {
	Users         []User `json:"users"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

type usersResponse struct {
	Users []User `json:"users"`
}

type userIDBody struct {
	UID string `json:"localId"`
}

type userIDsBody struct {
	UIDs  []string `json:"localIds"`
	Force bool     `json:"force"`
}

// CreateUser creates a new account with the given properties.
func (a *Auth) CreateUser(ctx context.Context, user NewUser) (*User, error) {
	var created User
	if err := a.client.post(ctx, a.uris.build(pathCreateUser), user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetUser returns the first account matching the identifier filter, or
// nil when none match.
func (a *Auth) GetUser(ctx context.Context, identifiers UserIdentifiers) (*User, error) {
	users, err := a.GetUsers(ctx, identifiers)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// GetUsers returns every account matching the identifier filter.
func (a *Auth) GetUsers(ctx context.Context, identifiers UserIdentifiers) ([]User, error) {
	var resp usersResponse
	if err := a.client.post(ctx, a.uris.build(pathGetUsers), identifiers, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ListUsers fetches accounts in pages of pageSize. Pass nil to start
// and the previous page to continue; a nil page with nil error means
// the listing is exhausted.
func (a *Auth) ListUsers(ctx context.Context, pageSize int, prev *UserPage) (*UserPage, error) {
	params := url.Values{"maxResults": {strconv.Itoa(pageSize)}}
	if prev != nil {
		if prev.NextPageToken == "" {
			return nil, nil
		}
		params.Set("nextPageToken", prev.NextPageToken)
	}

	var page UserPage
	if err := a.client.get(ctx, a.uris.build(pathListUsers), params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateUser applies the given changes and returns the updated record.
func (a *Auth) UpdateUser(ctx context.Context, update *UserUpdate) (*User, error) {
	var updated User
	if err := a.client.post(ctx, a.uris.build(pathUpdateUser), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser removes the account with the given id.
func (a *Auth) DeleteUser(ctx context.Context, uid string) error {
	return a.client.post(ctx, a.uris.build(pathDeleteUser), userIDBody{UID: uid}, nil)
}

// DeleteUsers removes the accounts with the given ids. With force set,
// accounts are removed even when currently disabled checks would block
// it.
func (a *Auth) DeleteUsers(ctx context.Context, uids []string, force bool) error {
	return a.client.post(ctx, a.uris.build(pathDeleteUsers), userIDsBody{UIDs: uids, Force: force}, nil)
}
