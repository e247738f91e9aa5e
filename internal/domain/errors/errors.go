package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidPayload      = errors.New("invalid payload")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrForbidden           = errors.New("forbidden")
	ErrPaymentsDisabled    = errors.New("payments disabled")
	ErrPaymentRequest      = errors.New("provider and order_id required")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
)

// TransitionError reports a status guard violation with a message fit for clients.
type TransitionError struct {
	Message string
}

func (e *TransitionError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match ErrInvalidTransition.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewTransitionError builds TransitionError with the given message.
func NewTransitionError(message string) error {
	return &TransitionError{Message: message}
}

// TransitionMessage returns the client-facing message carried by err, if any.
func TransitionMessage(err error) (string, bool) {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Message, true
	}
	return "", false
}
