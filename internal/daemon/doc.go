// Package daemon hosts the reconciliation engine inside winpind. One
// goroutine owns all engine invocations; refresh triggers (poll ticker,
// display hotplug events, IPC requests) are coalesced through a debounce
// window before each enumeration pass. A file lock guarantees a single
// daemon instance per state directory.
package daemon
