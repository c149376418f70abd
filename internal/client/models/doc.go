// Package models defines the JSON payloads exchanged with the Colis backend
// and the client-side projections built from them.
package models
