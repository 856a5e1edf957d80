package logger

// Standard field keys.
const (
	FieldComponent = "component"
	FieldService   = "service"
	FieldMethod    = "method"
	FieldTarget    = "target"
	FieldStatus    = "status"
	FieldAdapter   = "adapter"
	FieldAttempt   = "attempt"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
)

// Fields builds a map from alternating key-value pairs.
//
//	logger.Debug("sent", logger.Fields("method", "GET", "status", 200))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]any, err error) map[string]any {
	if fields == nil {
		fields = make(map[string]any)
	}
	fields[FieldError] = err.Error()
	return fields
}
