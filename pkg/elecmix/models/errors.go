package models

import "errors"

// ErrColumnNotFound indicates a named column is absent from a table.
var ErrColumnNotFound = errors.New("column not found")

// ErrYearNotFound indicates a requested year is absent from a table.
var ErrYearNotFound = errors.New("year not found")
