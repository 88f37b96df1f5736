// Package common contains constants and small helpers shared by the client
// and the fake backend.
package common

const (
	// AuthorizationHeader carries "Bearer <token>" on authenticated calls.
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the session token in AuthorizationHeader.
	BearerPrefix = "Bearer "
	// IdempotencyKeyHeader carries the per-order key on sale submissions.
	IdempotencyKeyHeader = "Idempotency-Key"
)

// Vehicle status identifiers as stored by the backend.
const (
	VehicleStatusAvailable int64 = 1
	VehicleStatusReserved  int64 = 2
	VehicleStatusSold      int64 = 3
)
