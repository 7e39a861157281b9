package models

// Challenge is the process-wide auth challenge: a nonce generated once per
// service lifecycle plus the fixed application triple shared with clients.
type Challenge struct {
	AppID  string
	AppKey string
	Realm  string
	Nonce  string
	Qop    string
}
