package wheel

import "errors"

var (
	// ErrNoSegments indicates the wheel has no prize units left to draw from
	ErrNoSegments = errors.New("wheel has no segments")

	// ErrIndexOutOfRange indicates a segment index outside [0, count)
	ErrIndexOutOfRange = errors.New("segment index out of range")

	// ErrInvalidSpinRange indicates a full-spin range with min > max or min < 1
	ErrInvalidSpinRange = errors.New("invalid full spin range: need 1 <= min <= max")

	// ErrUnknownSize indicates a wheel size preset that does not exist
	ErrUnknownSize = errors.New("unknown wheel size")
)
