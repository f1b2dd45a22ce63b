package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"auth.enabled": false,
		"auth.secret":  "",
		"auth.issuer":  "",

		"stack.timeout":                         "10s",
		"stack.retry.max_attempts":              defaultRetryMaxAttempts,
		"stack.retry.initial_interval":          "100ms",
		"stack.retry.max_interval":              "10s",
		"stack.retry.multiplier":                defaultRetryMultiplier,
		"stack.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"stack.circuit_breaker.timeout":         "30s",
		"stack.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"stack.rate_limit.requests_per_second":  0.0,
		"stack.rate_limit.burst_size":           1,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
