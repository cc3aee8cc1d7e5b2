// Package planadmin assigns subscription plans to users directly, bypassing
// payment. It backs the admin user-management screen; the client-side admin
// gate is a convenience only and the server re-checks the role on every call.
//
// A successful assignment publishes PlanAssigned on the event bus so plan
// resolvers watching the affected session refresh instead of serving the
// pre-assignment snapshot. Assigning a nil plan reverts the user to the
// implicit free tier.
package planadmin
