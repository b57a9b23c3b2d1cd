package types

import "errors"

var (
	ErrInputNotFound    = errors.New("input file not found")
	ErrEmptyDataset     = errors.New("dataset has no rows")
	ErrNotEnoughHistory = errors.New("not enough monthly history to fit the forecast model")
	ErrUnknownEngine    = errors.New("unknown RFM engine, use 'sql' or 'memory'")
	ErrInvalidAsOf      = errors.New("invalid --as-of date, expected YYYY-MM-DD")
)
