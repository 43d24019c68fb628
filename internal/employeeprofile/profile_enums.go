package employeeprofile

import "go-hrms/internal/shared/enum"

type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "active"
	StatusProbation  EmployeeStatus = "probation"
	StatusOnLeave    EmployeeStatus = "on_leave"
	StatusSuspended  EmployeeStatus = "suspended"
	StatusRetired    EmployeeStatus = "retired"
	StatusTerminated EmployeeStatus = "terminated"
)

var EmployeeStatuses = enum.New("EmployeeStatus",
	StatusActive, StatusProbation, StatusOnLeave, StatusSuspended, StatusRetired, StatusTerminated,
)

type ProfileChangeStatus string

const (
	ChangePending  ProfileChangeStatus = "pending"
	ChangeApproved ProfileChangeStatus = "approved"
	ChangeRejected ProfileChangeStatus = "rejected"
	ChangeCanceled ProfileChangeStatus = "canceled"
)

var ProfileChangeStatuses = enum.New("ProfileChangeStatus",
	ChangePending, ChangeApproved, ChangeRejected, ChangeCanceled,
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

const (
	employeeCounter = "employee"
	employeePrefix  = "EMP"
)
