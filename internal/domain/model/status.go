package model

import domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"

const (
	msgOnlyNewPayable = "Only NEW orders can be paid"
	msgCannotCancel   = "Cannot cancel at current status"
)

var knownStatuses = map[OrderStatus]struct{}{
	OrderStatusNew:       {},
	OrderStatusAccepted:  {},
	OrderStatusPreparing: {},
	OrderStatusReady:     {},
	OrderStatusDelivered: {},
	OrderStatusPaid:      {},
	OrderStatusCancelled: {},
}

// Valid reports whether s is one of the known lifecycle statuses.
func (s OrderStatus) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// Pay moves a NEW order to PAID.
func (s OrderStatus) Pay() (OrderStatus, error) {
	if s != OrderStatusNew {
		return s, domainErrors.NewTransitionError(msgOnlyNewPayable)
	}
	return OrderStatusPaid, nil
}

// Cancel moves a NEW or ACCEPTED order to CANCELLED.
func (s OrderStatus) Cancel() (OrderStatus, error) {
	if s != OrderStatusNew && s != OrderStatusAccepted {
		return s, domainErrors.NewTransitionError(msgCannotCancel)
	}
	return OrderStatusCancelled, nil
}

// Override applies a partner-supplied status. Any known status is accepted
// regardless of the current one; unknown values are rejected.
func (s OrderStatus) Override(next OrderStatus) (OrderStatus, error) {
	if !next.Valid() {
		return s, domainErrors.ErrInvalidStatus
	}
	return next, nil
}
