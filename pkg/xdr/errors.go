package xdr

import "errors"

// ============================================================================
// Error Taxonomy
// ============================================================================

// Every failure raised by this package wraps exactly one of the sentinel
// errors below, so callers can classify with errors.Is without parsing
// messages. Failures are hard: no operation logs, retries or falls back to a
// default, and a failing operation never leaves partial bytes in the packer
// buffer or moves the unpacker cursor.

var (
	// ErrConversion is returned when a value is outside the representable
	// range of its declared XDR type, such as packing 1<<31 as a signed
	// 32-bit integer, or when a fixed array does not match its declared
	// size.
	ErrConversion = errors.New("xdr: conversion error")

	// ErrUnderrun is returned when fewer bytes remain in the input buffer
	// than an unpack operation requires.
	ErrUnderrun = errors.New("xdr: buffer underrun")

	// ErrLength is returned when a decoded length or count field is
	// negative when sign-reinterpreted, or too large to be satisfied by
	// the remaining input. It guards against oversized allocations from
	// corrupt or hostile streams.
	ErrLength = errors.New("xdr: invalid length")

	// ErrPosition is returned when an explicit cursor set targets an
	// offset outside [0, len(buffer)].
	ErrPosition = errors.New("xdr: position out of range")
)
