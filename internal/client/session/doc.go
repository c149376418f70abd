// Package session persists the signed-in user's token, role and id.
//
// The three values live under fixed keys of the client key/value store and
// are always written and cleared together. Two encodings are provided behind
// the same Store interface: plain (values stored as is) and secure (each value
// sealed with AES-GCM under a key derived from a device secret or passphrase).
package session
