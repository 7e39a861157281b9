package models

import "github.com/crewbase/crewbase/internal/storex"

// Table names. Each entity maps 1:1 to a named table; accounts_by_email and
// teams_by_name are the hand-maintained uniqueness index tables.
const (
	TableAccounts        = "accounts"
	TableCredentials     = "credentials"
	TableAccountsByEmail = "accounts_by_email"
	TableTeams           = "teams"
	TableTeamsByName     = "teams_by_name"
	TableMemberships     = "memberships"
	TableSessions        = "sessions"
	TablePreferences     = "preferences"
)

// Schema lists the primary key columns of every table the server touches.
// Must stay in sync with schema/keyspace.cql.
var Schema = storex.Schema{
	TableAccounts:        {"id"},
	TableCredentials:     {"account_id"},
	TableAccountsByEmail: {"email"},
	TableTeams:           {"id"},
	TableTeamsByName:     {"name"},
	TableMemberships:     {"team_id", "account_id"},
	TableSessions:        {"id"},
	TablePreferences:     {"account_id"},
}
