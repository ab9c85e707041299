package constants

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Job statuses.
const (
	JobPending    = "pending"
	JobInProgress = "in-progress"
	JobCompleted  = "completed"
	JobCancelled  = "cancelled"
)

// Line item statuses share the job vocabulary; new items default to pending.
const LineItemPending = JobPending

// Service alert severities.
const (
	SeverityNormal    = "normal"
	SeverityUrgent    = "urgent"
	SeverityNonUrgent = "non-urgent"
)

// Invite statuses. Expiry is computed from expires_at at acceptance time,
// never persisted as a status.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
)

// Duration change request statuses.
const (
	DurationRequestPending  = "pending"
	DurationRequestApproved = "approved"
	DurationRequestDenied   = "denied"
)

var jobStatuses = map[string]bool{
	JobPending: true, JobInProgress: true, JobCompleted: true, JobCancelled: true,
}

var severities = map[string]bool{
	SeverityNormal: true, SeverityUrgent: true, SeverityNonUrgent: true,
}

var roles = map[string]bool{RoleUser: true, RoleAdmin: true}

// IsValidJobStatus reports whether s is one of the four job statuses.
func IsValidJobStatus(s string) bool {
	return jobStatuses[s]
}

// IsValidSeverity reports whether s is a known alert severity.
func IsValidSeverity(s string) bool {
	return severities[s]
}

// IsValidRole reports whether s is a known user role.
func IsValidRole(s string) bool {
	return roles[s]
}
