package models

import "time"

// Session records a successful login. Best-effort companion row; account
// deletion does not cascade here (known leak, see DESIGN.md).
type Session struct {
	ID        string
	AccountID string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Preferences holds per-account defaults written as best-effort follow-on
// provisioning after signup.
type Preferences struct {
	AccountID string
	Locale    string
	TimeZone  string
}
