package model

import "errors"

// Authorization errors, shared by every resource.
var (
	// ErrAuthenticationRequired means the endpoint needs an identity and none was presented.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrPermissionDenied means an identity (or its absence) may not perform the action.
	ErrPermissionDenied = errors.New("permission denied")
)
