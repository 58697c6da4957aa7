package domain

import "errors"

var (
	// ErrInvalidEntity is returned when an entity cannot be constructed or
	// mutated because an identity or required field is invalid.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrAssociationExists is returned by the association helpers when the
	// requested link is already in place.
	ErrAssociationExists = errors.New("association already exists")
)
