package domain

import "errors"

// Course and lesson rule violations
var (
	ErrNoActiveLessons          = errors.New("cannot publish a course without active lessons")
	ErrDuplicateOrdersInRequest = errors.New("duplicate orders found in reorder request")
)
