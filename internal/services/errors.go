package services

import "errors"

// Analysis service errors
var (
	ErrRowCeilingExceeded = errors.New("dataset exceeds the configured row ceiling")
	ErrNoDatasets         = errors.New("no datasets provided")
	ErrInvalidInput       = errors.New("invalid input")
)
