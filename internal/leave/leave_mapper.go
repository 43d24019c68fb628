package leave

import "time"

const dateLayout = "2006-01-02"

func mapToRequestResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		LeaveType:     l.LeaveType,
		FromDate:      l.FromDate.Format(dateLayout),
		ToDate:        l.ToDate.Format(dateLayout),
		DurationDays:  l.DurationDays,
		Justification: l.Justification,
		AttachmentID:  l.AttachmentID,
		Status:        l.Status,
		ReviewerID:    l.ReviewerID,
		ReviewComment: l.ReviewComment,
		CreatedAt:     l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToRequestListResponse(reqs []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = mapToRequestResponse(r)
	}
	return resp
}

func mapToBalanceResponse(e LeaveEntitlement) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		EmployeeID:        e.EmployeeID,
		LeaveType:         e.LeaveType,
		YearlyEntitlement: e.YearlyEntitlement,
		Adjusted:          e.Adjusted,
		Taken:             e.Taken,
		Remaining:         e.Remaining(),
	}
}

func mapToAdjustmentResponse(a LeaveAdjustment, e LeaveEntitlement) LeaveAdjustmentResponse {
	return LeaveAdjustmentResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		LeaveType:      a.LeaveType,
		AdjustmentType: a.AdjustmentType,
		Amount:         a.Amount,
		Reason:         a.Reason,
		HRUserID:       a.HRUserID,
		Balance:        mapToBalanceResponse(e),
		CreatedAt:      a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
