// Package ipc connects the winpin CLI to the winpind daemon over JSON-RPC on
// a Unix domain socket. The wire types mirror the pin manager's published
// state; all mutation flows through the daemon so the engine stays the single
// owner of the reference list.
package ipc
