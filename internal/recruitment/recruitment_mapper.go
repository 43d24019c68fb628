package recruitment

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

func mapToApplicationResponse(a Application, history []ApplicationStatusHistory) ApplicationResponse {
	resp := ApplicationResponse{
		ID:            a.ID,
		CandidateID:   a.CandidateID,
		RequisitionID: a.RequisitionID,
		AssignedHRID:  a.AssignedHRID,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for _, h := range history {
		resp.History = append(resp.History, ApplicationHistoryResponse{
			OldStatus: h.OldStatus,
			NewStatus: h.NewStatus,
			ChangedBy: h.ChangedBy,
			Reason:    h.Reason,
			ChangedAt: h.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp
}

func mapToApplicationListResponse(apps []Application) []ApplicationResponse {
	resp := make([]ApplicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = mapToApplicationResponse(a, nil)
	}
	return resp
}

func mapToOnboardingResponse(o Onboarding) OnboardingResponse {
	tasks := make([]OnboardingTaskResponse, len(o.Tasks))
	for i, t := range o.Tasks {
		tasks[i] = OnboardingTaskResponse{
			ID:          t.ID,
			Name:        t.Name,
			Department:  t.Department,
			Status:      t.Status,
			Deadline:    formatDate(t.Deadline),
			CompletedAt: formatTime(t.CompletedAt),
			DocumentID:  t.DocumentID,
			Notes:       t.Notes,
		}
	}
	return OnboardingResponse{
		ID:          o.ID,
		EmployeeID:  o.EmployeeID,
		ContractID:  o.ContractID,
		Completed:   o.Completed,
		CompletedAt: formatTime(o.CompletedAt),
		Tasks:       tasks,
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
