package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrConflict               = errors.New("resource conflict")
	ErrDuplicateMedication    = errors.New("duplicate medication for patient")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInteractionUnavailable = errors.New("interaction service unavailable")
)
