package cfr

import "errors"

var (
	ErrUnknownCategoryType = errors.New("unknown category type")
	ErrInvalidFilterType   = errors.New("invalid filter type")
	ErrMissingFilterField  = errors.New("missing filter field")
	ErrInvalidFilterField  = errors.New("invalid filter field")
	ErrInvalidMonth        = errors.New("invalid month format")
)
