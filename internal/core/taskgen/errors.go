package taskgen

import (
	"errors"
	"fmt"
)

// Category is the closed set of user-facing failure classes for the
// generation service. Raw transport errors never leak past this adapter.
type Category string

const (
	// CategoryRateLimited means the service rejected the request for quota
	// reasons; the user should wait, so the client does not retry.
	CategoryRateLimited Category = "rate-limited"
	// CategoryInvalidKey means the credential was rejected.
	CategoryInvalidKey Category = "invalid-key"
	// CategoryTransient covers overload, network and timeout failures that
	// are retried with backoff before surfacing.
	CategoryTransient Category = "transient"
	// CategoryEmpty means the service answered with no usable text.
	CategoryEmpty Category = "empty-response"
	// CategoryUnknown is everything else.
	CategoryUnknown Category = "unknown"
)

// Error is a classified generation failure.
type Error struct {
	Category Category
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("generation failed (%s): %s", e.Category, e.Message)
}

// ErrEmptyPrompt is returned before any request is made.
var ErrEmptyPrompt = errors.New("prompt is required")

// Classify maps any error from the client to its category.
func Classify(err error) Category {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Category
	}
	return CategoryUnknown
}

func (e *Error) retryable() bool {
	return e.Category == CategoryTransient
}
