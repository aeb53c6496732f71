package settings

import "errors"

var (
	// ErrLegacyRead indicates the pre-migration config.json could not be read.
	// It is never fatal: migration treats it as "no legacy data".
	ErrLegacyRead = errors.New("legacy config unreadable")

	// ErrMissingConfig indicates the config key is absent after migration.
	ErrMissingConfig = errors.New("config missing from persistent store")

	// ErrParse indicates the stored config blob is not a valid config document.
	ErrParse = errors.New("stored config is malformed")

	// ErrPersist indicates a read or write against the persistent store failed.
	ErrPersist = errors.New("persistent store failure")
)
