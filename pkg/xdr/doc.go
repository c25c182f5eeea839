// Package xdr implements the XDR (External Data Representation) primitive
// codec per RFC 4506.
//
// XDR is the standard data serialization format used by Sun RPC protocols
// including NFS and NLM. This package provides the two halves of the codec:
// a Packer that appends values to a growing output buffer, and an Unpacker
// that reads values back from an input buffer under a cursor.
//
// Key characteristics of XDR:
//   - Big-endian byte order for all multi-byte integers
//   - 4-byte alignment for all data types
//   - Variable-length data is preceded by a 4-byte length
//   - Strings and opaque data are padded to 4-byte boundaries
//
// The byte stream carries no framing, type tags or versioning: the caller's
// pack/unpack call sequence is the implicit schema, and the two sides must
// agree on it out-of-band. The codec guarantees byte-level correctness of
// each operation and the padding/bounds discipline, nothing more.
//
// Packer and Unpacker values are value-scoped: create one per message and
// discard it after use. Instances are independent and safe to use from
// different goroutines, but a single instance must be owned by one encode or
// decode sequence at a time.
//
// This package contains only the generic codec with no dependencies on
// logging, transport or protocol types.
//
// Reference: RFC 4506 - XDR: External Data Representation Standard
// https://tools.ietf.org/html/rfc4506
package xdr
