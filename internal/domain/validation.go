package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidAccountKind = errors.New("invalid account kind")
	ErrNoteTooLong        = errors.New("note exceeds maximum length")
)

// Validation constants
const (
	MaxNameLength = 255
	MaxNoteLength = 1024
)

// ValidateAccountName validates the first/last name pair of an account.
func ValidateAccountName(firstName, lastName string) error {
	full := strings.TrimSpace(firstName + " " + lastName)

	if full == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(full) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxNameLength)
	}

	return nil
}

// ValidateAccountKind validates the client/supplier discriminator.
func ValidateAccountKind(kind AccountKind) error {
	switch kind {
	case AccountKindClient, AccountKindSupplier:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidAccountKind, kind)
}

// ValidateNote validates free-text note length.
func ValidateNote(note string) error {
	if len(note) > MaxNoteLength {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrNoteTooLong, len(note), MaxNoteLength)
	}
	return nil
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
