package services

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("you can only manage your own bookings")
)

// RejectionError reports a business-rule violation. The reason is shown to the
// caller as-is, so it has to stand on its own.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string { return e.Reason }

func reject(reason string) error { return &RejectionError{Reason: reason} }

func IsRejection(err error) bool {
	var rejection *RejectionError
	return errors.As(err, &rejection)
}
