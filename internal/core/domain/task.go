package domain

import "time"

// TaskKind is one of the fixed services performed for a client month.
type TaskKind string

const (
	TaskBookkeeping        TaskKind = "Bookkeeping"
	TaskVATComputation     TaskKind = "VAT Filing Computation"
	TaskVATFiling          TaskKind = "VAT Filing"
	TaskFinancialStatement TaskKind = "Financial Statement Generation"
)

// AllTasks is the fixed, ordered task catalogue.
var AllTasks = []TaskKind{TaskBookkeeping, TaskVATComputation, TaskVATFiling, TaskFinancialStatement}

// Valid reports whether t is in the catalogue.
func (t TaskKind) Valid() bool {
	for _, k := range AllTasks {
		if k == t {
			return true
		}
	}
	return false
}

// TaskAssignment binds one task of one client month to an employee.
// Removal is soft so completed periods keep their history.
type TaskAssignment struct {
	AssignmentID     string     `json:"assignmentID"`
	ClientID         string     `json:"clientId"`
	EmployeeID       string     `json:"employeeId"`
	EmployeeName     string     `json:"employeeName"`
	ClientName       string     `json:"clientName"`
	Year             int        `json:"year"`
	Month            int        `json:"month"`
	Task             TaskKind   `json:"task"`
	AccountingDone   bool       `json:"accountingDone"`
	AccountingDoneAt *time.Time `json:"accountingDoneAt,omitempty"`
	AssignedAt       time.Time  `json:"assignedAt"`
	AssignedBy       string     `json:"assignedBy"`
	IsRemoved        bool       `json:"isRemoved"`
	RemovedAt        *time.Time `json:"removedAt,omitempty"`
	RemovedBy        *string    `json:"removedBy,omitempty"`
}

// Period returns the month the assignment covers.
func (a *TaskAssignment) Period() Period {
	return Period{Year: a.Year, Month: a.Month}
}

// TaskSlot is the status of one task kind for a client month.
type TaskSlot struct {
	Task           TaskKind `json:"task"`
	Assigned       bool     `json:"assigned"`
	AssignmentID   string   `json:"assignmentId,omitempty"`
	EmployeeID     string   `json:"employeeId,omitempty"`
	EmployeeName   string   `json:"employeeName,omitempty"`
	AccountingDone bool     `json:"accountingDone"`
}

// TaskStatus summarises assignment state for a client month.
type TaskStatus struct {
	ClientID       string     `json:"clientId"`
	Year           int        `json:"year"`
	Month          int        `json:"month"`
	Tasks          []TaskSlot `json:"tasks"`
	AssignedTasks  []TaskKind `json:"assignedTasks"`
	AvailableTasks []TaskKind `json:"availableTasks"`
}

// BuildTaskStatus folds the active assignments of one client month into a status.
// Removed assignments are ignored.
func BuildTaskStatus(clientID string, p Period, assignments []TaskAssignment) TaskStatus {
	active := make(map[TaskKind]TaskAssignment, len(assignments))
	for _, a := range assignments {
		if a.IsRemoved || a.ClientID != clientID || a.Period() != p {
			continue
		}
		active[a.Task] = a
	}

	status := TaskStatus{
		ClientID:       clientID,
		Year:           p.Year,
		Month:          p.Month,
		Tasks:          make([]TaskSlot, 0, len(AllTasks)),
		AssignedTasks:  []TaskKind{},
		AvailableTasks: []TaskKind{},
	}
	for _, kind := range AllTasks {
		slot := TaskSlot{Task: kind}
		if a, ok := active[kind]; ok {
			slot.Assigned = true
			slot.AssignmentID = a.AssignmentID
			slot.EmployeeID = a.EmployeeID
			slot.EmployeeName = a.EmployeeName
			slot.AccountingDone = a.AccountingDone
			status.AssignedTasks = append(status.AssignedTasks, kind)
		} else {
			status.AvailableTasks = append(status.AvailableTasks, kind)
		}
		status.Tasks = append(status.Tasks, slot)
	}
	return status
}

// DocumentCheck is the answer to "may tasks be assigned for this month yet".
type DocumentCheck struct {
	HasDocuments      bool           `json:"hasDocuments"`
	MissingCategories []CategoryType `json:"missingCategories"`
	Message           string         `json:"message"`
}

// DeactivationResult reports the cascade of deactivating an employee.
type DeactivationResult struct {
	EmployeeID         string `json:"employeeId"`
	Year               int    `json:"year"`
	Month              int    `json:"month"`
	RemovedAssignments int    `json:"removedAssignments"`
	Message            string `json:"message"`
}
