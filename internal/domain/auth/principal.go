package auth

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Principal is the already-authenticated caller. Token issuance and user
// management live in the external identity provider; the engine only consumes
// the {userId, role} pair extracted from the verified token.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Owns reports whether the principal owns the resource with the given owner ID.
func (p Principal) Owns(ownerID string) bool { return p.UserID == ownerID }
