package services

import "github.com/erickreynosop/scheduleassistant/internal/models"

// VisibilityScope bounds appointment queries to one owner or to everyone.
// The zero value is intentionally unusable; build scopes through the
// constructors so every query states its boundary explicitly.
type VisibilityScope struct {
	allOwners bool
	ownerID   uint
}

func ScopeForAllOwners() VisibilityScope {
	return VisibilityScope{allOwners: true}
}

func ScopeForOwner(ownerID uint) VisibilityScope {
	return VisibilityScope{ownerID: ownerID}
}

// ScopeForUser derives the visibility boundary from the role capability:
// bosses see every owner's appointments, customers only their own.
func ScopeForUser(user *models.User) VisibilityScope {
	if user != nil && user.Role.CanSeeAllAppointments() {
		return ScopeForAllOwners()
	}
	if user == nil {
		return VisibilityScope{}
	}
	return ScopeForOwner(user.ID)
}

// OwnerID returns the owner filter for range queries, nil meaning all owners.
func (scope VisibilityScope) OwnerID() *uint {
	if scope.allOwners {
		return nil
	}
	ownerID := scope.ownerID
	return &ownerID
}

func (scope VisibilityScope) IncludesOwner(ownerID uint) bool {
	return scope.allOwners || scope.ownerID == ownerID
}
