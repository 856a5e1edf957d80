package request

import "reflect"

// Target is the destination of a request. *url.URL satisfies it directly;
// URI wraps a plain string. The factory never parses or validates a target,
// it only carries it to the client.
type Target interface {
	String() string
}

// URI is a string Target.
type URI string

func (u URI) String() string { return string(u) }

// TargetString renders t. A nil target, including a nil pointer such as a
// nil *url.URL, renders as "" and resolves to the client's base URL.
func TargetString(t Target) string {
	if t == nil {
		return ""
	}
	if v := reflect.ValueOf(t); v.Kind() == reflect.Pointer && v.IsNil() {
		return ""
	}
	return t.String()
}
