// Package common defines the sentinel errors shared across the alumnihub
// client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Token errors. A token that fails to decode is not an authentication
	// failure; decoding is used for local addressing only.
	ErrInvalidToken = errors.New("invalid token")
	ErrNoIdentity   = errors.New("no identity claim")

	// Record store errors.
	ErrNotFound = errors.New("not found")
	ErrFetch    = errors.New("fetch failed")
	ErrUpdate   = errors.New("update failed")

	// Object store errors.
	ErrUpload = errors.New("upload failed")

	// ErrStale marks the result of a load or save that finished after its
	// owner was invalidated or superseded. Such results must be discarded,
	// never applied.
	ErrStale = errors.New("stale result")
)
