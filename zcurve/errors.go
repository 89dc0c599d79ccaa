package zcurve

import "errors"

var (
	ErrInvalidDegree        = errors.New("invalid degree")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrCoordinateOutOfRange = errors.New("coordinate out of range")
	ErrUnsupportedVariant   = errors.New("variant not supported for mode")
	ErrThreadStart          = errors.New("could not start worker")
	ErrAllocation           = errors.New("could not allocate buffer")
	ErrBufferSize           = errors.New("buffer too small")
	ErrInvalidChunkWidth    = errors.New("invalid lookup chunk width")
)
