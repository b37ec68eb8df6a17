package models

import "time"

// TaskAssignment is a row of the task_assignments table. Rows are never
// deleted; removal sets IsRemoved.
type TaskAssignment struct {
	AssignmentID     string     `db:"assignment_id"`
	ClientID         string     `db:"client_id"`
	EmployeeID       string     `db:"employee_id"`
	EmployeeName     string     `db:"employee_name"`
	ClientName       string     `db:"client_name"`
	Year             int        `db:"year"`
	Month            int        `db:"month"`
	Task             string     `db:"task"`
	AccountingDone   bool       `db:"accounting_done"`
	AccountingDoneAt *time.Time `db:"accounting_done_at"`
	AssignedAt       time.Time  `db:"assigned_at"`
	AssignedBy       string     `db:"assigned_by"`
	IsRemoved        bool       `db:"is_removed"`
	RemovedAt        *time.Time `db:"removed_at"`
	RemovedBy        *string    `db:"removed_by"`
}
