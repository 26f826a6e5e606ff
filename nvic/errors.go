package nvic

import "errors"

var (
	ErrInvalidLine         = errors.New("invalid interrupt line")
	ErrInvalidGroupingMode = errors.New("invalid priority grouping mode")
	ErrInvalidPriority     = errors.New("priority field out of range")
	ErrInvalidLayout       = errors.New("invalid controller layout")
)
