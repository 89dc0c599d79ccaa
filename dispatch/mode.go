package dispatch

import (
	"fmt"
	"strings"

	"github.com/pdok/zcurve/zcurve"
)

// Mode is the direction of a request.
type Mode uint8

const (
	// FullCurve computes every point of the curve into a buffer.
	FullCurve Mode = iota
	// Decode turns one index into a point.
	Decode
	// Encode turns one point into an index.
	Encode
)

// Modes lists all modes in the order they are presented.
var Modes = []Mode{FullCurve, Decode, Encode}

func (m Mode) String() string {
	switch m {
	case FullCurve:
		return "full-curve"
	case Decode:
		return "decode"
	case Encode:
		return "encode"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "full-curve", "full", "standard":
		return FullCurve, nil
	case "decode", "index":
		return Decode, nil
	case "encode", "position":
		return Encode, nil
	}
	return 0, fmt.Errorf("unknown mode %q: %w", s, zcurve.ErrUnsupportedVariant)
}
