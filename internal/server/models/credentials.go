package models

// Credentials is the 1:1 companion of an Account, keyed by the same
// identifier. Created in the same batch as the Account and deleted with it;
// it never exists for an absent account id.
type Credentials struct {
	AccountID      string
	PasswordDigest string
	Roles          []string
}
