// Package usage resolves the caller's current subscription plan together
// with the advisory usage counters computed against it.
//
// Plan and counters are fetched and cached as one snapshot, so a stale plan
// can never be paired with counters computed against a different plan: they
// are replaced and invalidated together.
//
// Missing data is "unknown", not "free tier". A failed fetch yields no
// snapshot at all; defaulting to free here would falsely block paying users
// (or falsely permit, depending on the check). The implicit free tier is
// used only when the server explicitly reports that the account holds no
// plan reference.
//
// Refreshing happens on a fixed interval through the Refresher, whose Stop
// handle is tied to the consuming view's lifetime. The only two triggers
// allowed to force a refresh outside the timer are a confirmed payment and
// an admin plan assignment, both delivered over the event bus; this bounds
// request volume by construction.
package usage
