// Package window defines the live window snapshot value type and the identity
// helpers built on it: locale-tolerant title normalization, the coarsened
// signature fingerprint, and synthetic fallback runtime IDs for windows the
// OS gives no stable window number.
//
// Snapshots are produced wholesale by the enumeration collaborator on every
// pass and discarded after reconciliation; nothing in this package mutates a
// snapshot after enumeration beyond fallback ID assignment.
package window
