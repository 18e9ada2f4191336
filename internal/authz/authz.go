// Package authz holds the caller identity and the permission rules applied
// to every resource.
package authz

import (
	"conduit/internal/model"
)

// Identity is the principal behind a request. The zero value is the
// anonymous identity.
type Identity struct {
	Email    string
	Username string
	Token    string // the bearer token the identity was resolved from
}

// Anonymous is the identity of a caller without a valid token.
var Anonymous = Identity{}

func (id Identity) IsAnonymous() bool {
	return id.Email == ""
}

// RequireIdentity guards identity-bound resources such as /user and the feed.
func RequireIdentity(id Identity) error {
	if id.IsAnonymous() {
		return model.ErrAuthenticationRequired
	}
	return nil
}

// CanWrite guards writes on public collections and instances: articles,
// comments, favorites and follows. Any authenticated identity may write;
// authorship is not checked.
func CanWrite(id Identity) error {
	if id.IsAnonymous() {
		return model.ErrPermissionDenied
	}
	return nil
}

// CanAccessUser allows viewing or editing a user record only to the
// identity that owns it.
func CanAccessUser(id Identity, u *model.User) error {
	if id.IsAnonymous() {
		return model.ErrAuthenticationRequired
	}
	if u == nil || u.Email != id.Email {
		return model.ErrPermissionDenied
	}
	return nil
}
