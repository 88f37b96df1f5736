// Package auth handles the session credential.
//
// DecodeSubject reads the "sub" claim of a token without verifying its
// signature. The client only uses the result as a lookup hint; the backend
// remains the authority on every request.
//
// GenerateToken and SubjectFromToken issue and verify HS256 tokens. The local
// fake backend uses them to behave like the real API.
package auth
