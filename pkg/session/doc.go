// Package session owns the client-resident view of who the caller is: the
// identity model, the persisted session snapshot, and the resolver state
// machine that reconciles both against the server's session check.
//
// # State machine
//
// A resolver is always in exactly one of three states:
//
//   - StateUnknown: not yet checked (initial, and after invalidation)
//   - StateAbsent: checked, no valid session
//   - StatePresent: checked, identity confirmed by the server
//
// StateAbsent is reachable only through an explicit auth-failure response or
// an explicit local logout. A transient network error leaves the resolver in
// its current state; treating "don't know yet" as "logged out" is the classic
// redirect-flicker bug and is ruled out by construction here, not by caller
// discipline alone.
//
// # Two independent resolvers
//
// User and admin sessions are independent state machines with separate
// snapshot keys: an admin session and a user session can coexist in the same
// browser context, so nothing is shared between the two resolvers.
//
// # Persistence
//
// The Store persists only a minimal snapshot per identity kind: whether a
// session was present, plus the minimal profile for provisional display.
// A rehydrated snapshot never moves the state machine past StateUnknown;
// StatePresent requires a confirmed remote response. Privileged decisions
// are re-validated against the server, never trusted from the persisted copy.
package session
