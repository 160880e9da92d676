package models

import "errors"

// Error kinds returned by the ingest and summary pipeline. Callers wrap them
// with context and match with errors.Is.
var (
	ErrIngest     = errors.New("invalid upload")
	ErrNoData     = errors.New("no dataset loaded")
	ErrRangeParse = errors.New("invalid date range")
	ErrProcessing = errors.New("processing failed")
)
