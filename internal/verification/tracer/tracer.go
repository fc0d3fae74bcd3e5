// Package tracer provides a lightweight tracing abstraction for the
// verification engine. The engine emits spans through this interface without
// depending on OpenTelemetry directly; tests use the no-op implementation.
//
// Ages are only ever attached as coarse buckets so traces never carry a raw
// date of birth.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// AgeBucket coarsens an exact age for safe trace annotation.
func AgeBucket(age int) string {
	switch {
	case age < 18:
		return "under_18"
	case age < 21:
		return "18_20"
	case age < 30:
		return "21_29"
	default:
		return "30_plus"
	}
}

// Span names used by the verification engine.
const (
	SpanObserveProduct    = "verify.observe_product"
	SpanReceiveCredential = "verify.receive_credential"
	SpanManualOverride    = "verify.manual_override"
)

// Attribute keys used by the verification engine.
const (
	AttrTransactionID = "transaction_id"
	AttrRestricted    = "restricted"
	AttrPromptShown   = "prompt_shown"
	AttrVerified      = "verified"
	AttrAgeBucket     = "age_bucket"
	AttrErrorCode     = "error_code"
)

// Event names used by the verification engine.
const (
	EventPromptEmitted = "prompt.emitted"
)
