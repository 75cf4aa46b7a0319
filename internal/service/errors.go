package service

import "errors"

// Pipeline error taxonomy. Every analysis failure wraps exactly one of these
// sentinels so callers can classify with errors.Is. All of them are terminal
// for the attempt; nothing is retried.
var (
	// ErrNotAuthenticated is returned when no authenticated user is attached
	// to an analysis request.
	ErrNotAuthenticated = errors.New("user not authenticated")

	// ErrImageProcessing covers unreadable sources, oversized sources and
	// re-encoding failures.
	ErrImageProcessing = errors.New("image processing failed")

	// ErrUpload covers object store failures for either the full image or
	// the thumbnail.
	ErrUpload = errors.New("image upload failed")

	// ErrRecognitionTransport covers network failures and non-2xx replies
	// from the recognition endpoint.
	ErrRecognitionTransport = errors.New("recognition request failed")

	// ErrRecognitionParse covers replies whose text carries no JSON object,
	// invalid JSON, or a JSON object that fails schema checks.
	ErrRecognitionParse = errors.New("recognition response unparseable")

	// ErrEmptyFoodList is a parse failure: a syntactically valid reply that
	// detected nothing. Rejected before aggregation so the confidence mean
	// is never taken over zero foods.
	ErrEmptyFoodList = errors.New("no foods detected in recognition response")

	// ErrPersistence covers database failures for meal and food item writes
	// and reads.
	ErrPersistence = errors.New("persistence operation failed")
)
