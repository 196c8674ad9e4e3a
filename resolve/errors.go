package resolve

import "errors"

var (
	// ErrInvalidPlate is returned for plates that do not normalize to 7 characters
	ErrInvalidPlate = errors.New("invalid plate (use 7 characters, e.g. ABC1D23 or ABC1234)")

	// ErrInvalidFipeCode is returned for fipe codes not matching ######-#
	ErrInvalidFipeCode = errors.New("invalid fipe code (e.g. 001004-9)")

	// ErrNotFound is returned when the registry has no candidate for a plate
	ErrNotFound = errors.New("no FIPE result found for this plate")

	// ErrProviderUnavailable is returned when the plate registry fails
	ErrProviderUnavailable = errors.New("plate provider unavailable")

	// ErrProviderMisconfigured is returned when the plate registry is not
	// configured (e.g. missing credentials)
	ErrProviderMisconfigured = errors.New("plate provider misconfigured")

	// ErrCatalogUnavailable is returned when the reference table listing fails
	ErrCatalogUnavailable = errors.New("FIPE reference tables unavailable")
)
