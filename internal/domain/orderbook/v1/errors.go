package orderbookv1

import "errors"

var (
	// ErrInvalidArgument is returned when a caller supplies a non-positive
	// price or quantity, or a reduction larger than the remaining quantity.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidOperation is returned when an operation is not permitted in
	// the order's current state, such as canceling a terminal order.
	ErrInvalidOperation = errors.New("invalid operation")
)
