package core

import "errors"

var (
	// ErrTableNotFound is returned for table keys missing from the registry.
	ErrTableNotFound = errors.New("table not found")

	// ErrPreferenceNotFound is returned by PreferenceStore.Load when the
	// owner never saved a configuration for the table.
	ErrPreferenceNotFound = errors.New("preference not found")

	// ErrUnknownColumn is returned for column commands naming a key the
	// table does not define.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidCommand is returned for column commands that cannot apply.
	ErrInvalidCommand = errors.New("invalid column command")

	// ErrInvalidDefinition is returned for catalog entries that fail validation.
	ErrInvalidDefinition = errors.New("invalid table definition")

	// ErrRateLimited is reported when a client exceeds its request budget.
	ErrRateLimited = errors.New("rate limit exceeded")
)
