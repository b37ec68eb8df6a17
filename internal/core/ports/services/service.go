package services

// ServiceContainer holds instances of all the application services.
// Handlers receive it whole and pick the facade they need.
type ServiceContainer struct {
	Auth       AuthSvcFacade
	Client     ClientSvcFacade
	Employee   EmployeeSvcFacade
	Lock       LockSvcFacade
	Assignment AssignmentSvcFacade
	Note       NoteSvcFacade
	Document   DocumentSvcFacade
}
