package domain

import "errors"

var (
	// ErrDuplicate is returned by the store when a slug or source URL already exists.
	ErrDuplicate = errors.New("duplicate post")
	// ErrUnexpectedStatus marks a non-200 upstream response.
	ErrUnexpectedStatus = errors.New("unexpected http status")
	// ErrNoContent means no extraction strategy matched the page.
	ErrNoContent = errors.New("no extractable content")
	// ErrContentTooShort means the extracted text did not reach the minimum length.
	ErrContentTooShort = errors.New("extracted content too short")
)
