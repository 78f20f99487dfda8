package domain

// HealthOutcome is the result of awaiting the auxiliary process.
type HealthOutcome string

const (
	// HealthHealthy means the process is alive (and, for the readiness
	// probe, accepting requests).
	HealthHealthy HealthOutcome = "healthy"
	// HealthUnhealthy means the process was observed to have exited.
	HealthUnhealthy HealthOutcome = "unhealthy"
	// HealthTimedOut means no confirmable healthy state was reached
	// within the deadline.
	HealthTimedOut HealthOutcome = "timed-out"
)

// HealthStatus indicates doctor check outcomes.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck captures a single diagnostic result.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport aggregates checks.
type HealthReport struct {
	Checks []HealthCheck
}
