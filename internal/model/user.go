package model

// User is a registered account. The password hash is part of the durable
// representation (the JSON snapshot backend serializes users directly), so
// it carries a real tag instead of being hidden.
type User struct {
	ID           int64  `json:"id,omitempty"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Roles, as offered by the registration form.
const (
	RoleAdmin      = "admin"
	RolePharmacist = "pharmacist"
	RoleManager    = "inventory manager"
	RoleHospital   = "hospital"
)

// Roles lists the selectable roles in form order.
var Roles = []string{RoleAdmin, RolePharmacist, RoleManager, RoleHospital}

// ValidRole reports whether role is one of the selectable roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
