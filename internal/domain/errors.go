package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found or does not
	// belong to the caller.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation indicates malformed caller input, rejected before any
	// store access.
	ErrValidation = errors.New("invalid input")
	// ErrProductUnavailable indicates the product is missing or out of stock.
	ErrProductUnavailable = errors.New("product unavailable")
	// ErrIdentityResolution indicates no user id could be established for a
	// guest or instant-buy flow.
	ErrIdentityResolution = errors.New("could not resolve user identity")
	// ErrAddressResolution indicates neither a new-address payload nor a
	// resolvable saved-address id was supplied.
	ErrAddressResolution = errors.New("could not resolve shipping address")
)
