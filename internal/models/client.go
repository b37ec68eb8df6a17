package models

// Client is a row of the clients table.
type Client struct {
	ClientID     string  `db:"client_id"`
	Name         string  `db:"name"`
	Email        string  `db:"email"`
	Phone        *string `db:"phone"`
	PlanSelected *string `db:"plan_selected"`
	IsActive     bool    `db:"is_active"`
	AuditFields
}

// Employee is a row of the employees table.
type Employee struct {
	EmployeeID string  `db:"employee_id"`
	Name       string  `db:"name"`
	Email      string  `db:"email"`
	Phone      *string `db:"phone"`
	IsActive   bool    `db:"is_active"`
	AuditFields
}
