// Package common defines shared constants and sentinel errors used across
// client and server layers of fileshare. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorForbidden        = errors.New("forbidden")
	ErrorValidation       = errors.New("validation error")
	ErrorStoreUnavailable = errors.New("storage unavailable")

	// Token lifecycle errors. All three map to "unauthorized" at the HTTP
	// boundary but stay distinguishable for callers and logs.
	ErrTokenMissing   = errors.New("missing token")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
)
