// Package common contains shared constants and sentinel errors used across
// Crewbase components.
package common

// AccessTokenHeaderName is the HTTP header used to carry the access token on
// authenticated requests.
const AccessTokenHeaderName = "Authorization"

// QopAuth is the quality-of-protection value advertised with every auth
// challenge.
const QopAuth = "auth"
