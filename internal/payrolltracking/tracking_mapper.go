package payrolltracking

import (
	"time"

	"github.com/shopspring/decimal"
)

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func amountPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

func mapToClaimResponse(c Claim) ClaimResponseDTO {
	return ClaimResponseDTO{
		ID:                  c.ID,
		ClaimID:             c.ClaimCode,
		Description:         c.Description,
		ClaimType:           c.ClaimType,
		EmployeeID:          c.EmployeeID,
		Amount:              c.Amount.InexactFloat64(),
		Status:              c.Status,
		PayrollSpecialistID: c.PayrollSpecialistID,
		PayrollManagerID:    c.PayrollManagerID,
		FinanceStaffID:      c.FinanceStaffID,
		ApprovedAmount:      amountPtr(c.ApprovedAmount),
		RejectionReason:     c.RejectionReason,
		ResolutionComment:   c.ResolutionComment,
		CreatedAt:           c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToClaimListResponse(claims []Claim) []ClaimResponseDTO {
	resp := make([]ClaimResponseDTO, len(claims))
	for i, c := range claims {
		resp[i] = mapToClaimResponse(c)
	}
	return resp
}

func mapToDisputeResponse(d Dispute) DisputeResponseDTO {
	return DisputeResponseDTO{
		ID:                  d.ID,
		DisputeID:           d.DisputeCode,
		Description:         d.Description,
		EmployeeID:          d.EmployeeID,
		PayslipID:           d.PayslipID,
		Status:              d.Status,
		PayrollSpecialistID: d.PayrollSpecialistID,
		PayrollManagerID:    d.PayrollManagerID,
		FinanceStaffID:      d.FinanceStaffID,
		RejectionReason:     d.RejectionReason,
		ResolutionComment:   d.ResolutionComment,
		CreatedAt:           d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToDisputeListResponse(disputes []Dispute) []DisputeResponseDTO {
	resp := make([]DisputeResponseDTO, len(disputes))
	for i, d := range disputes {
		resp[i] = mapToDisputeResponse(d)
	}
	return resp
}

func mapToRefundResponse(r Refund) RefundResponse {
	return RefundResponse{
		ID:             r.ID,
		ClaimID:        r.ClaimID,
		DisputeID:      r.DisputeID,
		EmployeeID:     r.EmployeeID,
		FinanceStaffID: r.FinanceStaffID,
		Amount:         r.Amount.InexactFloat64(),
		Description:    r.Description,
		Status:         r.Status,
		PaidAt:         formatTime(r.PaidAt),
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToRefundListResponse(refunds []Refund) []RefundResponse {
	resp := make([]RefundResponse, len(refunds))
	for i, r := range refunds {
		resp[i] = mapToRefundResponse(r)
	}
	return resp
}
