package ports

import "context"

// HealthChecker is implemented by any component that can report its health,
// such as the backing store or a downstream client.
type HealthChecker interface {
	// Name returns a stable identifier for this component (e.g. "memstore").
	Name() string

	// HealthCheck returns nil if the component is healthy, or an error
	// describing the failure. Implementations should respect context
	// cancellation and deadlines.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry manages registration and execution of health checkers.
// Used by the readiness endpoint to decide whether to accept traffic.
type HealthRegistry interface {
	// Register adds a HealthChecker to the registry.
	Register(checker HealthChecker)

	// CheckAll executes all registered health checks and returns results
	// keyed by checker name. Nil values indicate healthy components.
	CheckAll(ctx context.Context) map[string]error
}
