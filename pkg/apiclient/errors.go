package apiclient

import "errors"

var (
	// ErrAuthRequired indicates the server rejected the request because no
	// valid session exists. This is a valid terminal outcome for session
	// checks, not an exceptional condition, and is never retried.
	ErrAuthRequired = errors.New("authentication required")

	// ErrForbidden indicates the session is valid but the role or plan is
	// insufficient for the requested operation.
	ErrForbidden = errors.New("insufficient role or plan")

	// ErrNotFound indicates the referenced user, plan, or payment does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrTransient indicates a network error, timeout, or server-side failure
	// that may succeed on retry.
	ErrTransient = errors.New("transient request failure")

	// ErrMalformedResponse indicates the server responded with a payload that
	// could not be decoded.
	ErrMalformedResponse = errors.New("malformed server response")

	// ErrMissingBaseURL indicates the client was constructed without an API base URL.
	ErrMissingBaseURL = errors.New("api base URL is required")
)
