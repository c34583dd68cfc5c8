// Package config loads and validates winpin's TOML configuration.
//
// Configuration lives at ~/.config/winpin/config.toml by default. A missing
// file is not an error; defaults apply. Paths support ~ expansion and the
// package derives the database, socket, lock, and pid locations from the
// state directory so the daemon and CLI always agree on them.
package config
