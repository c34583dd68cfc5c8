// Package activate defines the outbound window-activation boundary. Raising
// and focusing windows is platform plumbing delegated to an external helper.
package activate
