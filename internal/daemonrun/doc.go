// Package daemonrun bootstraps the winpind process: logger, pin store,
// manager, engine daemon, and IPC server, wired together under one signal
// context. It also owns the pid-file helpers the CLI uses for liveness checks
// and graceful stops.
package daemonrun
