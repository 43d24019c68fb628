package leave

import "go-hrms/internal/shared/enum"

type LeaveStatus string

const (
	StatusPending   LeaveStatus = "pending"
	StatusApproved  LeaveStatus = "approved"
	StatusRejected  LeaveStatus = "rejected"
	StatusCancelled LeaveStatus = "cancelled"
)

var LeaveStatuses = enum.New("LeaveStatus", StatusPending, StatusApproved, StatusRejected, StatusCancelled)

type LeaveType string

const (
	TypeAnnual      LeaveType = "annual"
	TypeSick        LeaveType = "sick"
	TypeUnpaid      LeaveType = "unpaid"
	TypeMaternity   LeaveType = "maternity"
	TypePaternity   LeaveType = "paternity"
	TypeBereavement LeaveType = "bereavement"
)

var LeaveTypes = enum.New("LeaveType",
	TypeAnnual, TypeSick, TypeUnpaid, TypeMaternity, TypePaternity, TypeBereavement,
)

type AdjustmentType string

const (
	AdjustmentAdd        AdjustmentType = "add"
	AdjustmentDeduct     AdjustmentType = "deduct"
	AdjustmentEncashment AdjustmentType = "encashment"
)

var AdjustmentTypes = enum.New("AdjustmentType", AdjustmentAdd, AdjustmentDeduct, AdjustmentEncashment)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// DefaultEntitlements are granted to every new employee profile.
var DefaultEntitlements = map[LeaveType]float64{
	TypeAnnual:      21,
	TypeSick:        14,
	TypeBereavement: 3,
}
