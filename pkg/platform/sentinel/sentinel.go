package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Sources and loaders return these
// (optionally wrapped) so services can translate them into coded errors:
// - ErrNotFound: the backing file, table or key does not exist
// - ErrMalformed: the backing data exists but cannot be decoded
// - ErrUnavailable: the backing service cannot be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrMalformed   = errors.New("malformed")
	ErrUnavailable = errors.New("unavailable")
)
