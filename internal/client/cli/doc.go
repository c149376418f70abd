// Package cli provides the interactive Colis terminal client.
//
// App wires the configuration, the local SQLite store, the REST client and
// the services, then runs a REPL. The commands on offer depend on where the
// auth state routes the user: the login screen, role selection, the sender
// search screens or the transporter dashboard.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
