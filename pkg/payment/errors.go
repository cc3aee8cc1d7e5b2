package payment

import "errors"

var (
	// ErrUnknownStatus indicates the server reported a status outside the
	// pending/confirmed/failed set.
	ErrUnknownStatus = errors.New("unknown payment status")

	// ErrPlanNotVisible indicates the profile did not reflect the new plan
	// within the bounded consistency window; the caller should offer a
	// manual refresh rather than keep polling.
	ErrPlanNotVisible = errors.New("plan not yet visible on profile")
)
