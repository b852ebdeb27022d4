package pets

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
	ErrStorage      = errors.New("photo storage failure")
)

// InputError lleva el mensaje exacto que se devuelve al cliente (400).
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(reason string) error {
	return &InputError{Reason: reason}
}

// StorageError envuelve fallos de escritura de fotos (500).
type StorageError struct {
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("Error processing file: %v", e.Cause)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Cause }
