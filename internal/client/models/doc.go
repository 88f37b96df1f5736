// Package models defines the storefront domain as seen by the client:
// vehicles, services, customers, agents and sales, plus the request and
// display shapes derived from them.
//
// The backend does not use one consistent spelling for its fields, so every
// decoder here accepts both variants (for example "precio" and "price") as
// well as numbers sent as JSON strings, and tolerates missing nested objects.
package models
