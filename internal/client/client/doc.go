// Package client talks to the storefront HTTP API and bootstraps the local
// database.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the API interface) covering authentication, the
//     catalog, customers and sales.
//  2. A concrete HTTP implementation (see HTTPClient) with a fixed base URL,
//     JSON bodies, a bearer token attached per call, a bounded per-request
//     timeout and an instrumented transport. It never retries.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError. errors.Is matches them against
// ErrUnauthorized (401, 403) and ErrNotFound (404). Transport failures and
// timeouts wrap ErrUnavailable. ErrNoSession is reported by session providers
// when no token is stored.
package client
