package payrollexecution

import "time"

const dateLayout = "2006-01-02"

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(dateLayout)
	return &v
}

func mapToRunResponse(r PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		ID:                  r.ID,
		PayrollPeriod:       r.PayrollPeriod.Format(dateLayout),
		Entity:              r.Entity,
		Status:              r.Status,
		PayrollSpecialistID: r.PayrollSpecialistID,
		PayrollManagerID:    r.PayrollManagerID,
		FinanceStaffID:      r.FinanceStaffID,
		EmployeeCount:       r.EmployeeCount,
		TotalGross:          r.TotalGross.StringFixed(2),
		TotalTax:            r.TotalTax.StringFixed(2),
		TotalNet:            r.TotalNet.StringFixed(2),
		RejectionReason:     r.RejectionReason,
		UnlockReason:        r.UnlockReason,
		ManagerApprovedAt:   formatTime(r.ManagerApprovedAt),
		FinanceApprovedAt:   formatTime(r.FinanceApprovedAt),
		LockedAt:            formatTime(r.LockedAt),
		CreatedAt:           r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToRunListResponse(runs []PayrollRun) []PayrollRunResponse {
	resp := make([]PayrollRunResponse, len(runs))
	for i, r := range runs {
		resp[i] = mapToRunResponse(r)
	}
	return resp
}

func mapToEntryResponse(e PayrollEntry) PayrollEntryResponse {
	return PayrollEntryResponse{
		ID:                   e.ID,
		PayrollRunID:         e.PayrollRunID,
		EmployeeID:           e.EmployeeID,
		BaseSalary:           e.BaseSalary.StringFixed(2),
		Allowances:           e.Allowances.StringFixed(2),
		OvertimeHours:        e.OvertimeHours.String(),
		OvertimeRate:         e.OvertimeRate.StringFixed(2),
		OvertimePay:          e.OvertimePay.StringFixed(2),
		Deductions:           e.Deductions.StringFixed(2),
		Penalties:            e.Penalties.StringFixed(2),
		TaxRate:              e.TaxRate.String(),
		Tax:                  e.Tax.StringFixed(2),
		GrossSalary:          e.GrossSalary.StringFixed(2),
		NetSalary:            e.NetSalary.StringFixed(2),
		NegativeNetClamped:   e.NegativeNetClamped,
		HrEventType:          e.HrEventType,
		HrEventEffectiveDate: formatDate(e.HrEventEffectiveDate),
		HrNotes:              e.HrNotes,
		RequiresReview:       e.RequiresReview,
	}
}

func mapToEntryListResponse(entries []PayrollEntry) []PayrollEntryResponse {
	resp := make([]PayrollEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToEntryResponse(e)
	}
	return resp
}

func mapToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		PayslipID:       p.ID,
		PayrollRunID:    p.PayrollRunID,
		EmployeeID:      p.EmployeeID,
		GrossSalary:     p.GrossSalary.StringFixed(2),
		TotalDeductions: p.TotalDeductions.StringFixed(2),
		NetSalary:       p.NetSalary.StringFixed(2),
		PaymentStatus:   p.PaymentStatus,
		PaidAt:          formatTime(p.PaidAt),
		RenderedAt:      formatTime(p.RenderedAt),
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToPayslipListResponse(slips []Payslip) []PayslipResponse {
	resp := make([]PayslipResponse, len(slips))
	for i, p := range slips {
		resp[i] = mapToPayslipResponse(p)
	}
	return resp
}
