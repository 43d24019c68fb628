package recruitment

import "go-hrms/internal/shared/enum"

type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationInProcess ApplicationStatus = "in_process"
	ApplicationOffer     ApplicationStatus = "offer"
	ApplicationHired     ApplicationStatus = "hired"
	ApplicationRejected  ApplicationStatus = "rejected"
)

var ApplicationStatuses = enum.New("ApplicationStatus",
	ApplicationSubmitted, ApplicationInProcess, ApplicationOffer, ApplicationHired, ApplicationRejected,
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationSubmitted: {ApplicationInProcess, ApplicationRejected},
	ApplicationInProcess: {ApplicationOffer, ApplicationRejected},
	ApplicationOffer:     {ApplicationHired, ApplicationRejected},
}

// CanTransition reports whether an application may move from s to next.
// Hired and rejected are terminal.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OnboardingTaskStatus string

const (
	TaskPending    OnboardingTaskStatus = "pending"
	TaskInProgress OnboardingTaskStatus = "in_progress"
	TaskCompleted  OnboardingTaskStatus = "completed"
)

var OnboardingTaskStatuses = enum.New("OnboardingTaskStatus", TaskPending, TaskInProgress, TaskCompleted)
