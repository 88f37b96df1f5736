// Package fakeapi is an in-memory stand-in for the storefront backend. It
// serves the same HTTP/JSON routes the client calls, seeded with a small
// catalog, and is used for local development and end-to-end tests.
//
// Besides the routes, a Server can be told to fail the next matching
// request (see Server.Fail) to exercise the client's error paths.
package fakeapi
