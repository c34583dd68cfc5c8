// Package pins holds the pinned window references and the reconciliation
// engine that keeps them bound to live windows.
//
// A Reference is created on pin, refreshed in place on every successful
// reconciliation, and deleted on unpin. The Reconciler runs the matcher over
// every reference in stored order whenever the live inventory changes,
// guaranteeing each live window is claimed by at most one reference per pass.
// Stored order is the user-visible pin order and the implicit claim priority
// when two references could structurally match the same window, so it is
// never derived from the live window list.
//
// The Manager wraps the engine with the user-facing operations (pin, unpin,
// rename, reassign, reorder), serializes invocations, and brackets each pass
// with persistence. Reconciliation itself performs no I/O.
package pins
