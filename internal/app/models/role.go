package models

// Role defines the closed set of account roles
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleCompany Role = "company"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleCompany:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
