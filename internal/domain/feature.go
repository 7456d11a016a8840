package domain

// FeatureStatus describes how an optional, externally backed result was produced.
type FeatureStatus string

const (
	// StatusOK means the external service answered.
	StatusOK FeatureStatus = "ok"
	// StatusFallback means the service failed and built-in content was used.
	StatusFallback FeatureStatus = "fallback"
	// StatusUnavailable means the feature is not configured.
	StatusUnavailable FeatureStatus = "unavailable"
)
