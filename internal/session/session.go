// Package session carries the caller's identity explicitly through request handling.
package session

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// Role is the platform role of the caller.
type Role string

// Roles known to the platform.
const (
	RoleAnonymous Role = ""
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// Header names the browser sends with every API call.
const (
	HeaderUserID   = "X-User-ID"
	HeaderRole     = "X-Role"
	HeaderRoleID   = "X-Role-ID"
	HeaderUsername = "X-Username"
)

// ErrInvalidIdentity is returned when identity headers cannot be parsed.
var ErrInvalidIdentity = errors.New("invalid identity headers")

// Session is who is calling. RoleID is the id of the donor, recipient or volunteer
// record behind the user account.
type Session struct {
	UserID   int64
	Role     Role
	RoleID   int64
	Username string
}

// LoggedIn reports whether the caller presented an identity.
func (s Session) LoggedIn() bool {
	return s.Role != RoleAnonymous && s.RoleID != 0
}

// DisplayName is the username, or the role name when no username was sent.
func (s Session) DisplayName() string {
	if s.Username != "" {
		return s.Username
	}
	if s.Role == RoleAnonymous {
		return "Guest"
	}
	return strings.ToUpper(string(s.Role[:1])) + string(s.Role[1:])
}

// FromHeaders builds a session from request headers. Missing headers give an
// anonymous session; malformed ones give ErrInvalidIdentity.
func FromHeaders(h http.Header) (Session, error) {
	var sess Session

	role := Role(strings.ToLower(strings.TrimSpace(h.Get(HeaderRole))))
	switch role {
	case RoleAnonymous, RoleDonor, RoleRecipient, RoleVolunteer, RoleAdmin:
		sess.Role = role
	default:
		return Session{}, ErrInvalidIdentity
	}

	var err error
	if sess.UserID, err = parseID(h.Get(HeaderUserID)); err != nil {
		return Session{}, err
	}
	if sess.RoleID, err = parseID(h.Get(HeaderRoleID)); err != nil {
		return Session{}, err
	}
	sess.Username = strings.TrimSpace(h.Get(HeaderUsername))

	return sess, nil
}

func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, ErrInvalidIdentity
	}
	return id, nil
}

type contextKey struct{}

// WithSession stores sess in ctx.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session stored in ctx, or an anonymous one.
func FromContext(ctx context.Context) Session {
	sess, _ := ctx.Value(contextKey{}).(Session)
	return sess
}
