package errors

import "errors"

var (
	ErrNotFound = errors.New("schedule not found")

	ErrInvalidTimeRange = errors.New("end time must be after start time")
)
