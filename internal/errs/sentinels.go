// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across the staging workflow, upload manager, and clients.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the backend rejected the session identifier.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSession indicates an operation requiring a registered session was
	// attempted before registration.
	ErrNoSession = errors.New("no session")

	// ErrImageRequired indicates a staging operation without a pending image.
	ErrImageRequired = errors.New("image required")

	// ErrIncompleteAttributes indicates a staging attempt with one or more of
	// the four attributes left empty.
	ErrIncompleteAttributes = errors.New("incomplete attributes")

	// ErrEmptyWaitlist indicates a finalize attempt with nothing staged.
	ErrEmptyWaitlist = errors.New("empty waitlist")

	// ErrRequirementsNotMet indicates the minimum-viable-set rule
	// (at least 3 tops and 3 bottoms) is not satisfied.
	ErrRequirementsNotMet = errors.New("wardrobe requirements not met")

	// ErrAnalysisFailed indicates the image-analysis call returned no usable
	// result; the workflow degrades to manual tagging.
	ErrAnalysisFailed = errors.New("image analysis failed")

	// ErrUploadBusy indicates an upload or removal attempted while an
	// analysis is still in flight.
	ErrUploadBusy = errors.New("analysis in progress")
)
