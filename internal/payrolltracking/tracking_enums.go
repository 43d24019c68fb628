package payrolltracking

import "go-hrms/internal/shared/enum"

type ClaimStatus string

const (
	ClaimUnderReview            ClaimStatus = "under review"
	ClaimPendingManagerApproval ClaimStatus = "pending payroll Manager approval"
	ClaimApproved               ClaimStatus = "approved"
	ClaimRejected               ClaimStatus = "rejected"
)

var ClaimStatuses = enum.New("ClaimStatus",
	ClaimUnderReview, ClaimPendingManagerApproval, ClaimApproved, ClaimRejected,
)

type DisputeStatus string

const (
	DisputeUnderReview            DisputeStatus = "under review"
	DisputePendingManagerApproval DisputeStatus = "pending payroll Manager approval"
	DisputeApproved               DisputeStatus = "approved"
	DisputeRejected               DisputeStatus = "rejected"
)

var DisputeStatuses = enum.New("DisputeStatus",
	DisputeUnderReview, DisputePendingManagerApproval, DisputeApproved, DisputeRejected,
)

type RefundStatus string

const (
	RefundPending RefundStatus = "pending"
	RefundPaid    RefundStatus = "paid"
)

var RefundStatuses = enum.New("RefundStatus", RefundPending, RefundPaid)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

const (
	claimCounter   = "claim"
	disputeCounter = "dispute"
	claimPrefix    = "CLAIM"
	disputePrefix  = "DISP"
)
