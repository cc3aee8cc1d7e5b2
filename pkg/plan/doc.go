// Package plan defines the subscription plan reference data used across the
// client core: the closed tier enumeration, plan and usage models, feature
// checks, catalog lookups, and the static three-tier fallback table.
//
// Plans are immutable reference data fetched from the server; a user holds a
// reference to one plan or none, where none implies the implicit free
// default. Feature checks are pure functions over a plan snapshot so the
// access gate and UI affordances always agree.
//
// The fallback table exists so checkout can render plan details even while
// the live plan-list fetch is slow or failing. It is injected data, not
// hardcoded logic: the default table ships embedded as YAML and callers may
// load a replacement with LoadFallback.
package plan
