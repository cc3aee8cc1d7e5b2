// Package gate decides whether a protected surface may render: allow, show
// loading, or deny with a redirect target.
//
// The gate never conflates "not yet resolved" with "not authenticated":
// while the backing session resolver is still unknown the verdict is
// Loading, full stop. Denials carry a reason so callers can route
// authentication failures to the login screen and plan shortfalls to the
// upgrade screen, which are different conversations with the user.
//
// The gate only reads resolver state; populating caches and writing
// snapshots back is the resolvers' business.
package gate
