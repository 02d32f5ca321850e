package service

import "errors"

// domain errors surfaced to the HTTP layer
var (
	ErrInvalidRatio     = errors.New("fixed and variable ratios must sum to 100")
	ErrInvalidMonth     = errors.New("month must be formatted as YYYY-MM")
	ErrBudgetNotFound   = errors.New("budget is not set")
	ErrCategoryNotFound = errors.New("asset category not found")
)
