package domain

import "context"

// Principal is the identity attached to a single request. It is built either
// from verified token claims or from a stored user during login and is never
// persisted.
type Principal struct {
	UserID   int
	Username string
	Roles    []Role
}

// NewPrincipal builds a principal from a stored user.
func NewPrincipal(u *User) *Principal {
	roles := make([]Role, len(u.Roles))
	copy(roles, u.Roles)
	return &Principal{UserID: u.ID, Username: u.Username, Roles: roles}
}

// HasRole reports whether the principal was granted role. There is no role
// hierarchy: ROLE_Admin does not imply ROLE_User.
func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type principalCtxKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext returns the principal attached by the authentication
// middleware, or false when the request is unauthenticated.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(*Principal)
	return p, ok && p != nil
}
