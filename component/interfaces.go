package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed building block.
type Component interface {
	// Name returns the unique name of the component.
	Name() string
	// Start initializes the component.
	Start(ctx context.Context) error
	// Stop releases resources held by the component.
	Stop(ctx context.Context) error
	// Health returns the current health status.
	Health(ctx context.Context) Health
}

// Description holds summary information about a component.
type Description struct {
	// Name is the human-readable display name. If empty, Name() is used.
	Name string
	// Type categorizes the component, e.g. "http-client" or "request-factory".
	Type string
	// Details is a one-line summary of the configuration.
	Details string
}

// Describable is optionally implemented by components that can self-report.
type Describable interface {
	Describe() Description
}
