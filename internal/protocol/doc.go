// Package protocol owns the ledger wire contract and its shared primitives.
//
// Ownership boundary:
// - u128 packing (two little-endian u64 words, low word first)
// - command and operation codes, multi-batch operation set
// - message size bounds
//
// Subpackages carry the codecs: checksum, header, records, multibatch,
// packet and frame (leaf-first).
package protocol
