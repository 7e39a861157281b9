package models

import "time"

// Account is the primary identity row. Email is globally unique, enforced by
// the provisioning layer through the accounts_by_email index table since the
// store has no unique-column constraints.
type Account struct {
	ID            string
	Email         string
	FirstName     string
	LastName      string
	EmailVerified bool
	UpdatedAt     time.Time
}

// PublicProfile is the subset of Account safe to return from auth responses.
// Never carries the digest or any secret material.
type PublicProfile struct {
	ID            string
	Email         string
	FirstName     string
	LastName      string
	EmailVerified bool
}

func (a *Account) Public() PublicProfile {
	return PublicProfile{
		ID:            a.ID,
		Email:         a.Email,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		EmailVerified: a.EmailVerified,
	}
}
