// Package apiclient provides a typed HTTP client for the blogging platform's
// REST API. It is the single seam between the client-resident control flow
// and the server: session checks, plan and usage lookups, checkout creation,
// payment verification, and admin plan assignment all go through it.
//
// The client normalizes transport failures into a small error taxonomy that
// the rest of the module relies on:
//
//   - ErrAuthRequired: no valid session (HTTP 401); never retried, since
//     retrying cannot succeed and would mask a legitimate logged-out state
//   - ErrForbidden: valid session but insufficient role or plan (HTTP 403)
//   - ErrNotFound: referenced user, plan, or payment does not exist (HTTP 404)
//   - ErrTransient: network error, timeout, or server-side failure (5xx);
//     retried once with a short constant backoff before surfacing
//   - ErrMalformedResponse: the server answered but the payload is unusable
//
// User and admin identities authenticate independently: the token source is
// consulted per Audience, so an admin session and a user session can coexist
// in the same client.
//
// # Usage
//
//	var cfg apiclient.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	client := apiclient.New(cfg,
//		apiclient.WithTokenSource(tokens.For),
//	)
//
//	identity, err := client.SessionCheck(ctx, apiclient.AudienceUser)
//	if errors.Is(err, apiclient.ErrAuthRequired) {
//		// checked, no valid session
//	}
package apiclient
