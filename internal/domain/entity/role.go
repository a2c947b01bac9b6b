package entity

// Role represents an access role attached to a User.
type Role string

const (
	// RoleAdmin marks platform operators who review vendor applications.
	RoleAdmin Role = "admin"
	// RoleVendor marks approved store owners.
	RoleVendor Role = "vendor"
	// RoleCustomer marks regular shoppers.
	RoleCustomer Role = "customer"
)

// Roles is a convenience collection of Role values.
type Roles []Role

// ToStrings converts the roles to plain strings for token claims.
func (r Roles) ToStrings() []string {
	out := make([]string, 0, len(r))
	for _, role := range r {
		out = append(out, string(role))
	}

	return out
}
