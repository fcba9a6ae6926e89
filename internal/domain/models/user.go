// internal/domain/models/user.go
package models

// User is the identity the evaluation API resolves at login.
//
// NOTE:
//   - Role is immutable for the lifetime of a session. A role change on the
//     server only takes effect after the next login; nothing in this app
//     rewrites the role of an existing session.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"` // one of the Role* constants
}

// Credential is the bearer token issued by the evaluation API together with
// the User it authorizes. It is the only thing persisted across reloads:
// one serialized value in the session cookie.
type Credential struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Valid reports whether the credential is structurally usable: a token and
// enough of a user snapshot to drive the UI. A credential that fails this
// check is treated as "no session", never as an error.
func (c Credential) Valid() bool {
	return c.Token != "" && c.User.ID != "" && c.User.Role != ""
}
