package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// GatewayMetrics is returned by GET /v1/metrics/gateway.
type GatewayMetrics struct {
	GatewayCalls   int64   `json:"gatewayCalls"`
	GatewayErrors  int64   `json:"gatewayErrors"`
	ErrorRate      float64 `json:"errorRate"`
	CacheHitRate   float64 `json:"cacheHitRate"`
	SessionsOpened int64   `json:"sessionsOpened"`
	SessionsClosed int64   `json:"sessionsClosed"`
	CircuitBreaker string  `json:"circuitBreaker"`
	Period         string  `json:"period"`
}
