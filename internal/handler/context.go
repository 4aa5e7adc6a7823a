package handler

type ContextKey string

var (
	EmployeeInfoCtx ContextKey = "employeeInfo"
)
