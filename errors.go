package flatfiles

import "errors"

// Error kinds reported by this package. Parsing itself never fails on
// malformed content; these cover configuration, construction and the wire
// format. Failures of the underlying byte source propagate verbatim.
var (
	// ErrOptionOutOfRange reports a negative line/cell cap or a read
	// buffer smaller than MinReadBufferSize.
	ErrOptionOutOfRange = errors.New("option out of range")

	// ErrBufferTooSmall reports an input window too small to hold a
	// byte-order mark.
	ErrBufferTooSmall = errors.New("input buffer too small")

	// ErrInconsistent reports a structural invariant violation in an
	// externally constructed Table.
	ErrInconsistent = errors.New("inconsistent table")

	// ErrUnknownVersion reports an unsupported wire-format version byte.
	ErrUnknownVersion = errors.New("unknown wire format version")
)
