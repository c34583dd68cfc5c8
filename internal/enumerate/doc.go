// Package enumerate defines the inbound window-enumeration boundary. The
// engine consumes typed snapshots only; how they are observed (accessibility
// APIs, compositor protocols) belongs entirely to the external helper the
// CommandSource executes.
package enumerate
