package common

// AuthorizationHeaderName carries the bearer token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is attached to every outbound request so client and
// backend logs can be correlated.
const RequestIDHeaderName = "X-Request-Id"

// BearerPrefix precedes the JWT in the Authorization header.
const BearerPrefix = "Bearer "

// Role is the account type returned by the backend.
type Role string

const (
	RoleSender      Role = "SENDER"
	RoleTransporter Role = "TRANSPORTER"
)

// Valid reports whether r is one of the roles the client knows how to route.
func (r Role) Valid() bool {
	return r == RoleSender || r == RoleTransporter
}
