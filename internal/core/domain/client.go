package domain

// Client is an enrolled business whose monthly documents the practice handles.
type Client struct {
	ClientID     string `json:"clientID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	PlanSelected string `json:"planSelected,omitempty"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// ClientDetails is the full read model returned to the admin client screen.
type ClientDetails struct {
	Client
	// Documents is keyed by year, then month.
	Documents           map[int]map[int]MonthDocument `json:"documents"`
	EmployeeAssignments []TaskAssignment              `json:"employeeAssignments"`
}

// Employee is a member of the practice who carries out assigned tasks.
type Employee struct {
	EmployeeID string `json:"employeeID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
