package auth

// Role is the closed set of account roles.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Identity is the stored account record used as the subject of
// authentication. It is read fresh from the store on every request, so a
// role change takes effect on the next request.
type Identity struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
}

// Principal is the identity resolved for a single in-flight request,
// together with the authorities granted by its role. A Principal is built
// once per request and never shared across requests.
type Principal struct {
	Identity    Identity
	authorities map[Role]struct{}
}

// NewPrincipal builds a Principal from a stored identity.
func NewPrincipal(identity Identity) *Principal {
	authorities := make(map[Role]struct{}, 1)
	if identity.Role.Valid() {
		authorities[identity.Role] = struct{}{}
	}
	return &Principal{Identity: identity, authorities: authorities}
}

// HasAuthority reports whether the principal carries the given role.
// A nil principal carries no authorities.
func (p *Principal) HasAuthority(role Role) bool {
	if p == nil {
		return false
	}
	_, ok := p.authorities[role]
	return ok
}
