package domain

import "time"

// AuthEventType names an entry in the authentication audit trail.
type AuthEventType string

const (
	AuthEventLoginSucceeded AuthEventType = "login_succeeded"
	AuthEventLoginFailed    AuthEventType = "login_failed"
	AuthEventLoginThrottled AuthEventType = "login_throttled"
	AuthEventAccessDenied   AuthEventType = "access_denied"
)

// AuthEvent records an authentication or authorization decision.
type AuthEvent struct {
	Type     AuthEventType
	Username string // the acting (or attempted) username
	Target   string // owner named in the request path, for access_denied
	TokenID  string // jti of the issued or presented token, if any
	Reason   string // internal only, never returned to clients
	At       time.Time
}
