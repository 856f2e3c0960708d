// Package api provides the Go client for the Search Casa admin REST API.
// It is the single place outbound requests are built: bearer auth is
// attached from an injected token source, every failure is normalized to a
// *Error carrying one human-readable message, and successful payloads are
// decoded against typed response structs so malformed server responses
// surface as a *DecodeError instead of silently-defaulted fields.
//
// The package is organized in three layers:
//
//   - Client: the HTTP core (request building, auth injection, error
//     normalization, envelope unwrapping).
//   - Resource: a generic CRUD service bound to one REST path.
//   - AuthService / AdminService: curated, named operations composed from
//     the layers below (two-step login, dashboard stats, rule/user/plan
//     management).
//
// The client holds no session state of its own. The token source is read at
// send time for every request; login flows return the session token to the
// caller, which owns persisting it.
package api
