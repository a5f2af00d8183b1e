package youtubeapi

import "fmt"

// ErrorKind categorizes requester failures for callers.
type ErrorKind int

const (
	// KindNonTransientHTTP is a client/server error outside the transient set; never retried.
	KindNonTransientHTTP ErrorKind = iota
	// KindRetriesExhausted means transient errors persisted past the retry budget.
	KindRetriesExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case KindNonTransientHTTP:
		return "non_transient_http"
	case KindRetriesExhausted:
		return "retries_exhausted"
	}
	return "unknown"
}

// RequestError is a categorized YouTube Data API failure.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Kind == KindRetriesExhausted {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
