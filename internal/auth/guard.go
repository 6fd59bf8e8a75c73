package auth

import "github.com/google/uuid"

// OwnerGuard is the single authorization rule of the system: a resume may
// only be read or mutated by the user it belongs to.
type OwnerGuard struct{}

func NewOwnerGuard() OwnerGuard {
	return OwnerGuard{}
}

// Allow reports whether subject may act on a resource owned by owner.
func (OwnerGuard) Allow(subject, owner uuid.UUID) bool {
	return subject == owner
}
