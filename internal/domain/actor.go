package domain

type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleShop     ActorRole = "shop"
	// RoleSystem is used by scheduled jobs; it bypasses the per-role
	// transition gates but not the transition table itself.
	RoleSystem ActorRole = "system"
)

// Actor is the authenticated principal acting on a rental. The identity
// provider vouches for it; the core performs no credential checks.
type Actor struct {
	Role ActorRole
	ID   int32
}

// Owns reports whether the actor's tenant scope covers the rental. Customers
// see their own rentals, shops see rentals on their cars.
func (a Actor) Owns(rt *Rental) bool {
	switch a.Role {
	case RoleCustomer:
		return rt.CustomerID == a.ID
	case RoleShop:
		return rt.ShopID == a.ID
	case RoleSystem:
		return true
	}
	return false
}
