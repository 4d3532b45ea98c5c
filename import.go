package fireauth

import "context"

// HashAlgorithm names the password hash scheme of an imported record.
type HashAlgorithm string

const (
	HashHmacSha512     HashAlgorithm = "HMAC_SHA512"
	HashHmacSha256     HashAlgorithm = "HMAC_SHA256"
	HashHmacSha1       HashAlgorithm = "HMAC_SHA1"
	HashHmacMd5        HashAlgorithm = "HMAC_MD5"
	HashSha256         HashAlgorithm = "SHA256"
	HashSha512         HashAlgorithm = "SHA512"
	HashPbkdfSha1      HashAlgorithm = "PBKDF_SHA1"
	HashPbkdfSha256    HashAlgorithm = "PBKDF_SHA256"
	HashScrypt         HashAlgorithm = "SCRYPT"
	HashStandardScrypt HashAlgorithm = "STANDARD_SCRYPT"
	HashBcrypt         HashAlgorithm = "BCRYPT"
)

// PasswordHash carries an existing password hash and the parameters of
// its scheme. Only the fields the named algorithm uses are consulted:
// Key for the HMAC family and scrypt, Rounds for the digest and PBKDF
// families and scrypt, and the scrypt cost fields for the two scrypt
// variants.
type PasswordHash struct {
	Algorithm HashAlgorithm
	Hash      string
	Salt      string
	Key       string
	Rounds    int
	// Scrypt parameters.
	MemoryCost    int
	SaltSeparator string
	// Standard scrypt parameters.
	BlockSize       int
	Parallelization int
	DerivedKeyLen   int
}

// UserImportRecord describes one account for bulk creation, optionally
// with its current password hash so users keep their passwords.
type UserImportRecord struct {
	UID             string        `json:"localId,omitempty"`
	Email           string        `json:"email,omitempty"`
	DisplayName     string        `json:"displayName,omitempty"`
	PhotoURL        string        `json:"photoUrl,omitempty"`
	PhoneNumber     string        `json:"phoneNumber,omitempty"`
	EmailVerified   *bool         `json:"emailVerified,omitempty"`
	Salt            string        `json:"salt,omitempty"`
	PasswordHash    string        `json:"passwordHash,omitempty"`
	HashAlgorithm   HashAlgorithm `json:"hashAlgorithm,omitempty"`
	SignerKey       string        `json:"signerKey,omitempty"`
	MemoryCost      int           `json:"memoryCost,omitempty"`
	Parallelization int           `json:"parallelization,omitempty"`
	BlockSize       int           `json:"blockSize,omitempty"`
	DerivedKeyLen   int           `json:"dkLen,omitempty"`
	Rounds          int           `json:"rounds,omitempty"`
	SaltSeparator   string        `json:"saltSeparator,omitempty"`
	CustomClaims    Claims        `json:"customAttributes,omitempty"`
	Disabled        *bool         `json:"disabled,omitempty"`
}

// WithEmail sets the record's email and verification state.
func (r UserImportRecord) WithEmail(email string, verified bool) UserImportRecord {
	r.Email = email
	r.EmailVerified = &verified
	return r
}

// WithDisplayName sets the record's display name.
func (r UserImportRecord) WithDisplayName(name string) UserImportRecord {
	r.DisplayName = name
	return r
}

// WithPassword fills in the hash-scheme fields for the given password
// hash.
func (r UserImportRecord) WithPassword(p PasswordHash) UserImportRecord {
	r.HashAlgorithm = p.Algorithm
	r.PasswordHash = p.Hash
	r.Salt = p.Salt

	switch p.Algorithm {
	case HashHmacSha512, HashHmacSha256, HashHmacSha1, HashHmacMd5:
		r.SignerKey = p.Key
	case HashSha256, HashSha512, HashPbkdfSha1, HashPbkdfSha256:
		r.Rounds = p.Rounds
	case HashScrypt:
		r.SignerKey = p.Key
		r.Rounds = p.Rounds
		r.MemoryCost = p.MemoryCost
		r.SaltSeparator = p.SaltSeparator
	case HashStandardScrypt:
		r.MemoryCost = p.MemoryCost
		r.BlockSize = p.BlockSize
		r.Parallelization = p.Parallelization
		r.DerivedKeyLen = p.DerivedKeyLen
	case HashBcrypt:
	}
	return r
}

type userImportBody struct {
	Users []UserImportRecord `json:"users"`
}

// ImportUsers creates accounts in bulk via the batch create endpoint.
func (a *Auth) ImportUsers(ctx context.Context, records []UserImportRecord) error {
	return a.client.post(ctx, a.uris.build(pathImportUsers), userImportBody{Users: records}, nil)
}
