package models

import "time"

// Team is identified by a generated opaque token, so its primary key never
// collides; the name is globally unique, case-sensitive as stored.
type Team struct {
	ID          string
	Name        string
	Description string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Membership links an account to a team. Plain relation row, no uniqueness
// or atomicity coupling to provisioning.
type Membership struct {
	TeamID    string
	AccountID string
	Role      string
	AddedAt   time.Time
}
