package field

import "errors"

var (
	// ErrUnknownSkin is returned when a namespace does not match any
	// registered skin.
	ErrUnknownSkin = errors.New("field: unknown skin")
	// ErrUnknownKind is returned when a skin has no variant for a kind, or a
	// kind name cannot be parsed.
	ErrUnknownKind = errors.New("field: unknown kind")
)
