// Package wide provides fixed-size lane types for data-parallel integer work.
//
// The types are plain arrays with simple per-lane loops so the compiler can
// keep them in vector registers (SSE2, NEON) and unroll the loops. No unsafe,
// no assembly.
//
// # Types
//
// U16x8: 8 uint16 lanes, one coordinate per lane.
// U32x8: 8 uint32 lanes, one curve index per lane.
// U64x2: 2 uint64 lanes, one packed magic-bits word per lane.
//
// Shift counts apply to every lane alike, like the immediate shifts of the
// corresponding vector instructions.
package wide
