// Package services contains the application services behind the CLI screens:
// authentication, the vehicle catalog, the customer account and purchase
// history.
//
// Services never read storage ambiently; the session is injected as a
// session.Provider. Remote failures are logged with context and returned to
// the caller unchanged, wrapped with the operation that failed.
package services

import "errors"

var (
	// ErrInvalidInput wraps every validation failure. The wrapped message is
	// meant for the user.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIdentityUnresolved means neither a cached email nor a decodable
	// token subject is available.
	ErrIdentityUnresolved = errors.New("user identity could not be resolved")
)
