package domain

// Role is the kind of principal acting on the back office.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleClient:
		return true
	}
	return false
}

// User represents a login of any role. Client and employee profiles share its ID.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// Actor is the authenticated principal behind a request.
type Actor struct {
	UserID string
	Role   Role
}
