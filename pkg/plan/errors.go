package plan

import "errors"

var (
	ErrUnknownTier     = errors.New("unknown plan tier")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrInvalidFallback = errors.New("invalid fallback plan table")
)
